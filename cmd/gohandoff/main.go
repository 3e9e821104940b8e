// gohandoff moves a value into one goroutine, then shares one between
// several, printing each worker's identity next to the value it received.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/panyam/gohandoff"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	// keep stdout for worker lines only
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("gohandoff", pflag.ContinueOnError)
	workers := flags.IntP("workers", "w", gohandoff.DefaultFanOut, "number of workers sharing the fan-out value")
	logLevel := flags.String("log-level", "warn", "log level: debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", *workers)
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := []gohandoff.Option{
		gohandoff.WithOutput(stdout),
		gohandoff.WithLogger(logger),
	}

	gohandoff.IntoWorker(gohandoff.NewPerson("DUBOIS"), opts...)
	gohandoff.IntoWorker("Bonjour LAURENT", opts...)

	// A Person behind a plain, non-atomic counted pointer would not satisfy
	// gohandoff.Sharable, so it could be moved with IntoWorker but not fanned out.
	gohandoff.FanOut(gohandoff.NewPerson("SIMON"), *workers, opts...)
	return nil
}
