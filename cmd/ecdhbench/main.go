package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartcontractkit/ecdh128/ecdh"
	"github.com/smartcontractkit/ecdh128/internal/bench"
	"github.com/smartcontractkit/ecdh128/internal/logging"
	"github.com/smartcontractkit/ecdh128/internal/testimplementations/unsaferand"
	"gopkg.in/alecthomas/kingpin.v2"
)

var errInvalidPoint = errors.New("invalid point")

type cli struct {
	app *kingpin.Application

	logLevel   *string
	seed       *string
	metricsOut *string

	run        *kingpin.CmdClause
	iterations *int
	warmup     *int
	output     *string
	baselines  *bool

	loop          *kingpin.CmdClause
	loopPrimitive *string
	duration      *time.Duration
	progress      *time.Duration

	keygen *kingpin.CmdClause

	exchange     *kingpin.CmdClause
	privateKey   *string
	peerKey      *string
	exchangeBase *string

	validate  *kingpin.CmdClause
	publicKey *string

	stdout io.Writer
}

func newCLI(stdout, stderr io.Writer) *cli {
	c := &cli{stdout: stdout}
	c.app = kingpin.New("ecdhbench", "secp128r1 key exchange toolkit and benchmark driver.")
	c.app.ErrorWriter(stderr)
	c.app.UsageWriter(stderr)

	c.logLevel = c.app.Flag("log-level", "Log level (trace, debug, info, warn, error).").Default("info").String()
	c.seed = c.app.Flag("seed", "Derive all randomness deterministically from this seed. Not secure, for reproducible runs only.").String()
	c.metricsOut = c.app.Flag("metrics-out", "Write engine metrics in the Prometheus text format to this file on exit.").String()

	c.run = c.app.Command("run", "Benchmark all primitives, write latencies.csv and print statistics.").Default()
	c.iterations = c.run.Flag("iterations", "Measured iterations per primitive.").Short('n').Default(fmt.Sprint(bench.DefaultIterations)).Int()
	c.warmup = c.run.Flag("warmup", "Unmeasured warmup iterations per primitive.").Default(fmt.Sprint(bench.DefaultWarmup)).Int()
	c.output = c.run.Flag("output", "Latency CSV output file.").Short('o').Default("latencies.csv").String()
	c.baselines = c.run.Flag("baselines", "Also benchmark P-256, X25519 and Ed25519 scalar multiplication.").Bool()

	c.loop = c.app.Command("loop", "Run a single primitive back to back, e.g. for energy measurements.")
	c.loopPrimitive = c.loop.Arg("primitive", "Primitive to run.").Required().Enum(bench.Names()...)
	c.duration = c.loop.Flag("duration", "Stop after this duration, 0 runs until interrupted.").Default("0s").Duration()
	c.progress = c.loop.Flag("progress", "Log progress at this interval, 0 disables progress logs.").Default("10s").Duration()

	c.keygen = c.app.Command("keygen", "Generate a key pair.")

	c.exchange = c.app.Command("exchange", "Derive the shared secret from a private key and a peer public key.")
	c.privateKey = c.exchange.Arg("private-key", "Hex encoded private key (0x-prefixed).").Required().String()
	c.peerKey = c.exchange.Arg("peer-public-key", "Hex encoded peer public key (0x-prefixed x ‖ y).").Required().String()
	c.exchangeBase = c.exchange.Flag("public-key", "Own public key; if given, it is checked against the private key.").String()

	c.validate = c.app.Command("validate", "Check that a public key is a valid curve point.")
	c.publicKey = c.validate.Arg("public-key", "Hex encoded public key (0x-prefixed x ‖ y).").Required().String()
	return c
}

func main() {
	c := newCLI(os.Stdout, os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := c.execute(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errInvalidPoint) {
			os.Exit(1)
		}
		kingpin.Fatalf("%s", err)
	}
}

func (c *cli) execute(ctx context.Context, args []string) error {
	command, err := c.app.Parse(args)
	if err != nil {
		return fmt.Errorf("parsing arguments: %w. Try --help", err)
	}

	level, err := logging.ParseLevel(*c.logLevel)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(level)

	var random io.Reader = rand.Reader
	if *c.seed != "" {
		random = unsaferand.New(*c.seed)
	}

	registry := prometheus.NewRegistry()
	metrics, err := ecdh.NewMetrics(registry)
	if err != nil {
		return err
	}
	opts := []ecdh.Option{ecdh.WithRand(random), ecdh.WithMetrics(metrics)}

	switch command {
	case c.run.FullCommand():
		err = c.runBenchmarks(logger, random, metrics)
	case c.loop.FullCommand():
		err = c.runLoop(ctx, logger, random, metrics)
	case c.keygen.FullCommand():
		err = c.runKeygen(opts)
	case c.exchange.FullCommand():
		err = c.runExchange(opts)
	case c.validate.FullCommand():
		err = c.runValidate(metrics)
	}
	if err != nil {
		return err
	}

	if *c.metricsOut != "" {
		return prometheus.WriteToTextfile(*c.metricsOut, registry)
	}
	return nil
}

func (c *cli) runBenchmarks(logger *logging.Logger, random io.Reader, metrics *ecdh.Metrics) error {
	runner, err := bench.NewRunner(
		bench.WithIterations(*c.iterations), bench.WithWarmup(*c.warmup),
		bench.WithRand(random), bench.WithLogger(logger), bench.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	f, err := os.Create(*c.output)
	if err != nil {
		return err
	}
	err = runner.RunAll(bench.Primitives(*c.baselines), bench.NewCSVWriter(f))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Benchmarks completed. Results saved to %s\n", *c.output)

	f, err = os.Open(*c.output)
	if err != nil {
		return err
	}
	defer f.Close()
	latencies, err := bench.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", *c.output, err)
	}
	bench.Report(c.stdout, latencies)
	return nil
}

func (c *cli) runLoop(ctx context.Context, logger *logging.Logger, random io.Reader, metrics *ecdh.Metrics) error {
	p, err := bench.Lookup(*c.loopPrimitive)
	if err != nil {
		return err
	}
	runner, err := bench.NewRunner(bench.WithRand(random), bench.WithLogger(logger), bench.WithMetrics(metrics))
	if err != nil {
		return err
	}
	if *c.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *c.duration)
		defer cancel()
	}
	n, err := runner.Loop(ctx, p, *c.progress)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s: %d iterations\n", p.Name, n)
	return nil
}

type keyPair struct {
	PublicKey  ecdh.PublicKey `json:"publicKey"`
	PrivateKey hexutil.Bytes  `json:"privateKey"`
}

func (c *cli) runKeygen(opts []ecdh.Option) error {
	kx, err := ecdh.New(opts...)
	if err != nil {
		return err
	}
	sk := kx.PrivateKey()
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(keyPair{kx.PublicKey(), sk[:]})
}

func (c *cli) runExchange(opts []ecdh.Option) error {
	skBytes, err := hexutil.Decode(*c.privateKey)
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}
	if len(skBytes) != ecdh.SecretSize {
		return fmt.Errorf("invalid private key length: got %d, want %d", len(skBytes), ecdh.SecretSize)
	}
	sk := ecdh.PrivateKey(skBytes)

	var peer ecdh.PublicKey
	if err := peer.UnmarshalText([]byte(*c.peerKey)); err != nil {
		return err
	}
	if !ecdh.IsValidPoint(peer) {
		return fmt.Errorf("peer public key %s is not a valid point", peer)
	}

	var secret ecdh.SharedSecret
	if *c.exchangeBase != "" {
		var pk ecdh.PublicKey
		if err := pk.UnmarshalText([]byte(*c.exchangeBase)); err != nil {
			return err
		}
		kx, err := ecdh.NewFromKeys(pk, sk, opts...)
		if err != nil {
			return err
		}
		secret, err = kx.SharedKey(peer)
		if err != nil {
			return err
		}
	} else if secret, err = ecdh.SharedKey(peer, sk, opts...); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, hexutil.Encode(secret.Bytes()))
	return nil
}

func (c *cli) runValidate(metrics *ecdh.Metrics) error {
	var pk ecdh.PublicKey
	if err := pk.UnmarshalText([]byte(*c.publicKey)); err != nil {
		return err
	}
	valid := ecdh.IsValidPoint(pk)
	metrics.PointValidated(valid)
	if !valid {
		fmt.Fprintln(c.stdout, "invalid")
		return errInvalidPoint
	}
	fmt.Fprintln(c.stdout, "valid")
	return nil
}
