// Command mintd hosts a sale contract on a local bbolt-backed ledger.
//
// Usage:
//
//	mintd init    --manifest sale.yaml
//	mintd fund    --address buyer --amount 100ujunox
//	mintd exec    --sender buyer --funds 20ujunox '{"mint":{"collection":"collection1"}}'
//	mintd query   '{"get_collection_info":{"collection":"collection1","address":"buyer"}}'
//	mintd balance --address admin1 --denom ujunox
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	flag "github.com/spf13/pflag"

	"github.com/bitfsorg/libmint-go/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	name  string
	usage string
	run   func(env *cmdEnv, fs *flag.FlagSet, args []string) error
	flags func(fs *flag.FlagSet)
}

var commands = []command{
	{name: "init", usage: "create the data directory and apply a sale manifest", run: runInit, flags: initFlags},
	{name: "exec", usage: "execute a JSON message", run: runExec, flags: execFlags},
	{name: "query", usage: "run a JSON query", run: runQuery},
	{name: "fund", usage: "credit an account", run: runFund, flags: fundFlags},
	{name: "balance", usage: "print an account balance", run: runBalance, flags: balanceFlags},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: mintd <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return fmt.Errorf("no command given")
	}
	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		usage(os.Stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	dataDirFlag := fs.String("data-dir", "", "data directory (or set "+config.EnvDataDir+" env var)")
	verboseFlag := fs.Bool("verbose", false, "enable verbose (debug) logging")
	if cmd.flags != nil {
		cmd.flags(fs)
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	dataDir := config.DefaultDataDir()
	if envDataDir := os.Getenv(config.EnvDataDir); envDataDir != "" {
		dataDir = envDataDir
	}
	if *dataDirFlag != "" {
		dataDir = *dataDirFlag
	}

	env := &cmdEnv{dataDir: dataDir, verbose: *verboseFlag, out: out}
	return cmd.run(env, fs, fs.Args())
}

// newLogger builds a tint console logger at the configured level.
func newLogger(cfg config.Config, verbose bool) (*slog.Logger, io.Closer, error) {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: cfg.LogFile != "",
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(formatRFC3339Millis(a.Value.Time()))
			}
			return a
		},
	})), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func formatRFC3339Millis(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s.%03dZ", t.Format("2006-01-02T15:04:05"), t.Nanosecond()/1_000_000)
}
