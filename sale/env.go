package sale

import (
	"time"

	"github.com/bitfsorg/libmint-go/entropy"
)

// BlockInfo describes the block a request executes in.
type BlockInfo struct {
	Height  uint64
	Time    time.Time
	ChainID string
}

// Env is the host-supplied execution environment.
type Env struct {
	Block    BlockInfo
	Contract string // address of this contract
}

// MessageInfo is the caller identity and the funds attached to the request.
type MessageInfo struct {
	Sender string
	Funds  Coins
}

func (e Env) entropyContext(sender string) entropy.Context {
	return entropy.Context{Height: e.Block.Height, Caller: sender}
}
