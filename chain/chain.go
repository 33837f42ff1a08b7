// Package chain hosts a sale contract the way a block-based ledger would:
// requests run one at a time, each in its own storage transaction, with the
// block height and time supplied by the host. Attached funds move into the
// contract account before the contract runs, and the instructions it emits
// are applied in the same transaction, so a failure anywhere leaves no
// trace.
package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitfsorg/libmint-go/sale"
	"github.com/bitfsorg/libmint-go/storage"
)

// DefaultContractAddress is the account that holds the sale contract's funds.
const DefaultContractAddress = "sale_contract"

// Config holds the dependencies of a Chain. Logger, DB and ChainID are
// required; the rest default in Validate.
type Config struct {
	Logger          *slog.Logger
	Clock           clockwork.Clock
	DB              storage.DB
	Contract        *sale.Contract
	ContractAddress string
	ChainID         string
	Registerer      prometheus.Registerer // optional; nil registers nowhere
}

// Validate checks the required fields and fills in defaults for the
// optional ones.
func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.DB == nil {
		return errors.New("db is required")
	}
	if cfg.ChainID == "" {
		return errors.New("chain id is required")
	}
	if cfg.Contract == nil {
		cfg.Contract = sale.New()
	}
	if cfg.ContractAddress == "" {
		cfg.ContractAddress = DefaultContractAddress
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.NewRegistry()
	}
	return nil
}

// Chain executes requests against a single sale contract.
type Chain struct {
	log     *slog.Logger
	cfg     Config
	metrics *Metrics

	mu sync.Mutex
}

var height = storage.NewItem[uint64]("chain_height")

// New validates cfg and returns a Chain ready to execute requests.
func New(cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chain{
		log:     cfg.Logger,
		cfg:     cfg,
		metrics: NewMetrics(cfg.Registerer),
	}, nil
}

// Metrics returns the host counters.
func (c *Chain) Metrics() *Metrics { return c.metrics }

// ContractAddress returns the account that holds the contract's funds.
func (c *Chain) ContractAddress() string { return c.cfg.ContractAddress }

// Height returns the height of the last committed block.
func (c *Chain) Height() (uint64, error) {
	var h uint64
	err := c.cfg.DB.View(func(kv storage.KVStore) error {
		var err error
		h, _, err = height.MayLoad(kv)
		return err
	})
	return h, err
}

// Instantiate writes the contract's owner record.
func (c *Chain) Instantiate(ctx context.Context, sender string, msg sale.InstantiateMsg) (*sale.Response, error) {
	return c.run(ctx, "instantiate", sale.MessageInfo{Sender: sender}, func(kv storage.KVStore, env sale.Env, info sale.MessageInfo) (*sale.Response, error) {
		return c.cfg.Contract.Instantiate(kv, env, info, msg)
	})
}

// Execute runs one state-changing request from sender with funds attached.
func (c *Chain) Execute(ctx context.Context, sender string, funds sale.Coins, msg sale.ExecuteMsg) (*sale.Response, error) {
	action, err := msg.Action()
	if err != nil {
		c.reject(err)
		return nil, err
	}
	return c.run(ctx, action, sale.MessageInfo{Sender: sender, Funds: funds}, func(kv storage.KVStore, env sale.Env, info sale.MessageInfo) (*sale.Response, error) {
		return c.cfg.Contract.Execute(kv, env, info, msg)
	})
}

// Query runs a read-only request and returns its JSON result.
func (c *Chain) Query(ctx context.Context, msg sale.QueryMsg) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := c.cfg.DB.View(func(kv storage.KVStore) error {
		var err error
		out, err = c.cfg.Contract.Query(kv, msg)
		return err
	})
	return out, err
}

// Fund credits addr with coins from outside the ledger.
func (c *Chain) Fund(ctx context.Context, addr string, coins sale.Coins) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.DB.Update(func(kv storage.KVStore) error {
		for _, coin := range coins {
			if err := credit(kv, addr, coin); err != nil {
				return err
			}
		}
		return nil
	})
}

// Balance returns the amount of denom held by addr.
func (c *Chain) Balance(addr, denom string) (uint64, error) {
	var n uint64
	err := c.cfg.DB.View(func(kv storage.KVStore) error {
		var err error
		n, err = balanceOf(kv, addr, denom)
		return err
	})
	return n, err
}

// Token returns the registry record of a minted item.
func (c *Chain) Token(collection, tokenID string) (Token, error) {
	var tok Token
	err := c.cfg.DB.View(func(kv storage.KVStore) error {
		t, ok, err := tokens.MayLoad(kv, collection, tokenID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s/%s", ErrTokenNotFound, collection, tokenID)
		}
		tok = t
		return nil
	})
	return tok, err
}

type handler func(kv storage.KVStore, env sale.Env, info sale.MessageInfo) (*sale.Response, error)

// run executes fn in the next block. The height advances only when the
// request commits.
func (c *Chain) run(ctx context.Context, action string, info sale.MessageInfo, fn handler) (*sale.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		res *sale.Response
		env sale.Env
	)
	start := c.cfg.Clock.Now()
	err := c.cfg.DB.Update(func(kv storage.KVStore) error {
		last, _, err := height.MayLoad(kv)
		if err != nil {
			return err
		}
		env = sale.Env{
			Block:    sale.BlockInfo{Height: last + 1, Time: start, ChainID: c.cfg.ChainID},
			Contract: c.cfg.ContractAddress,
		}
		if err := transfer(kv, info.Sender, c.cfg.ContractAddress, info.Funds); err != nil {
			return err
		}
		res, err = fn(kv, env, info)
		if err != nil {
			return err
		}
		if err := c.apply(kv, res); err != nil {
			return fmt.Errorf("apply %s: %w", action, err)
		}
		return height.Save(kv, env.Block.Height)
	})

	log := c.log.With("request_id", uuid.New().String(), "action", action, "sender", info.Sender, "height", env.Block.Height)
	if err != nil {
		c.metrics.RequestsTotal.WithLabelValues(action, "error").Inc()
		c.reject(err)
		log.Warn("request rejected", "error", err, "duration", c.cfg.Clock.Since(start))
		return nil, err
	}

	c.metrics.RequestsTotal.WithLabelValues(action, "ok").Inc()
	c.metrics.Height.Set(float64(env.Block.Height))
	c.record(res)
	log.Info("request committed", "instructions", len(res.Instructions), "duration", c.cfg.Clock.Since(start))
	return res, nil
}

// apply carries out the emitted instructions in order.
func (c *Chain) apply(kv storage.KVStore, res *sale.Response) error {
	for i, in := range res.Instructions {
		switch {
		case in.Mint != nil:
			if err := register(kv, *in.Mint); err != nil {
				return fmt.Errorf("instruction %d: %w", i, err)
			}
		case in.Send != nil:
			if err := transfer(kv, c.cfg.ContractAddress, in.Send.ToAddress, in.Send.Amount); err != nil {
				return fmt.Errorf("instruction %d: %w", i, err)
			}
		}
	}
	return nil
}

func (c *Chain) record(res *sale.Response) {
	if act, _ := res.Attribute("action"); act != "mint" {
		return
	}
	collection, _ := res.Attribute("collection")
	phase, _ := res.Attribute("phase")
	c.metrics.MintsTotal.WithLabelValues(collection, phase).Inc()
	for _, in := range res.Instructions {
		if in.Send == nil {
			continue
		}
		for _, coin := range in.Send.Amount {
			c.metrics.PayoutsTotal.WithLabelValues(coin.Denom).Add(float64(coin.Amount))
		}
	}
}

func (c *Chain) reject(err error) {
	c.metrics.RejectionsTotal.WithLabelValues(Reason(err)).Inc()
}
