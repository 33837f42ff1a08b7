package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/bitfsorg/libmint-go/address"
	"github.com/bitfsorg/libmint-go/chain"
	"github.com/bitfsorg/libmint-go/config"
	"github.com/bitfsorg/libmint-go/sale"
	"github.com/bitfsorg/libmint-go/storage"
)

type cmdEnv struct {
	dataDir string
	verbose bool
	out     io.Writer
}

// node is an opened data directory.
type node struct {
	log   *slog.Logger
	chain *chain.Chain
	close func()
}

func (e *cmdEnv) open(cfg config.Config) (*node, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	log, logCloser, err := newLogger(cfg, e.verbose)
	if err != nil {
		return nil, err
	}
	validator, err := address.ForFormat(cfg.AddressFormat)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	db, err := storage.OpenBoltDB(config.DBPath(cfg.DataDir))
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	c, err := chain.New(chain.Config{
		Logger:   log,
		DB:       db,
		Contract: sale.New(sale.WithValidator(validator)),
		ChainID:  cfg.ChainID,
	})
	if err != nil {
		db.Close()
		logCloser.Close()
		return nil, err
	}
	log.Debug("opened data directory", "path", cfg.DataDir, "chain_id", cfg.ChainID)
	return &node{log: log, chain: c, close: func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
		logCloser.Close()
	}}, nil
}

// openExisting loads the config of an initialized data directory.
func (e *cmdEnv) openExisting() (*node, error) {
	cfg, err := config.LoadConfig(config.ConfigPath(e.dataDir))
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w (run mintd init first)", err)
	}
	if err != nil {
		return nil, err
	}
	cfg.DataDir = e.dataDir
	return e.open(cfg)
}

func (e *cmdEnv) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// messageArg returns the JSON message from the positional argument or the
// file named by --msg-file.
func messageArg(fs *flag.FlagSet, args []string) ([]byte, error) {
	path, _ := fs.GetString("msg-file")
	switch {
	case path != "" && len(args) > 0:
		return nil, fmt.Errorf("give the message inline or with --msg-file, not both")
	case path != "":
		return os.ReadFile(path)
	case len(args) == 1:
		return []byte(args[0]), nil
	default:
		return nil, fmt.Errorf("expected exactly one JSON message argument")
	}
}

func initFlags(fs *flag.FlagSet) {
	fs.String("manifest", "", "YAML sale manifest to apply (required)")
	fs.String("chain-id", "", "chain id reported to the contract (default from config)")
	fs.String("address-format", "", "address format: plain or bsv (default from config)")
}

func runInit(e *cmdEnv, fs *flag.FlagSet, _ []string) error {
	manifestPath, _ := fs.GetString("manifest")
	if manifestPath == "" {
		return fmt.Errorf("--manifest is required for init")
	}
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	path := config.ConfigPath(e.dataDir)
	cfg, err := config.LoadConfig(path)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return err
	}
	cfg.DataDir = e.dataDir
	if v, _ := fs.GetString("chain-id"); v != "" {
		cfg.ChainID = v
	}
	if v, _ := fs.GetString("address-format"); v != "" {
		cfg.AddressFormat = v
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}
	if err := config.SaveConfig(path, cfg); err != nil {
		return err
	}

	n, err := e.open(cfg)
	if err != nil {
		return err
	}
	defer n.close()

	ctx := context.Background()
	if _, err := n.chain.Instantiate(ctx, manifest.Owner, manifest.Instantiate()); err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	for _, msg := range manifest.Messages() {
		if _, err := n.chain.Execute(ctx, manifest.Owner, nil, msg); err != nil {
			action, _ := msg.Action()
			return fmt.Errorf("%s: %w", action, err)
		}
	}
	n.log.Info("initialized", "data_dir", e.dataDir, "owner", manifest.Owner, "collections", len(manifest.Collections))
	return nil
}

func execFlags(fs *flag.FlagSet) {
	fs.String("sender", "", "sender address (required)")
	fs.String("funds", "", "attached funds, e.g. 20ujunox")
	fs.String("msg-file", "", "read the JSON message from a file")
}

func runExec(e *cmdEnv, fs *flag.FlagSet, args []string) error {
	sender, _ := fs.GetString("sender")
	if sender == "" {
		return fmt.Errorf("--sender is required for exec")
	}
	fundsFlag, _ := fs.GetString("funds")
	funds, err := sale.ParseCoins(fundsFlag)
	if err != nil {
		return err
	}
	raw, err := messageArg(fs, args)
	if err != nil {
		return err
	}
	msg, err := sale.ParseExecuteMsg(raw)
	if err != nil {
		return err
	}

	n, err := e.openExisting()
	if err != nil {
		return err
	}
	defer n.close()

	res, err := n.chain.Execute(context.Background(), sender, funds, msg)
	if err != nil {
		return err
	}
	return e.printJSON(res)
}

func runQuery(e *cmdEnv, _ *flag.FlagSet, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one JSON query argument")
	}
	msg, err := sale.ParseQueryMsg([]byte(args[0]))
	if err != nil {
		return err
	}

	n, err := e.openExisting()
	if err != nil {
		return err
	}
	defer n.close()

	out, err := n.chain.Query(context.Background(), msg)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(out, &v); err != nil {
		return err
	}
	return e.printJSON(v)
}

func fundFlags(fs *flag.FlagSet) {
	fs.String("address", "", "account to credit (required)")
	fs.String("amount", "", "coins to credit, e.g. 100ujunox,5uatom (required)")
}

func runFund(e *cmdEnv, fs *flag.FlagSet, _ []string) error {
	addr, _ := fs.GetString("address")
	amount, _ := fs.GetString("amount")
	if addr == "" || amount == "" {
		return fmt.Errorf("--address and --amount are required for fund")
	}
	coins, err := sale.ParseCoins(amount)
	if err != nil {
		return err
	}

	n, err := e.openExisting()
	if err != nil {
		return err
	}
	defer n.close()

	if err := n.chain.Fund(context.Background(), addr, coins); err != nil {
		return err
	}
	n.log.Info("funded", "address", addr, "amount", coins.String())
	return nil
}

func balanceFlags(fs *flag.FlagSet) {
	fs.String("address", "", "account to inspect (required)")
	fs.String("denom", "", "denomination (required)")
}

func runBalance(e *cmdEnv, fs *flag.FlagSet, _ []string) error {
	addr, _ := fs.GetString("address")
	denom, _ := fs.GetString("denom")
	if addr == "" || strings.TrimSpace(denom) == "" {
		return fmt.Errorf("--address and --denom are required for balance")
	}

	n, err := e.openExisting()
	if err != nil {
		return err
	}
	defer n.close()

	amount, err := n.chain.Balance(addr, denom)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, sale.Coin{Denom: denom, Amount: amount}.String())
	return nil
}
