package chain

import (
	"fmt"
	"math"

	"github.com/bitfsorg/libmint-go/sale"
	"github.com/bitfsorg/libmint-go/storage"
)

var balances = storage.NewMap[uint64]("bank_balances")

func balanceOf(kv storage.KVStore, addr, denom string) (uint64, error) {
	n, _, err := balances.MayLoad(kv, addr, denom)
	return n, err
}

func credit(kv storage.KVStore, addr string, c sale.Coin) error {
	have, err := balanceOf(kv, addr, c.Denom)
	if err != nil {
		return err
	}
	if have > math.MaxUint64-c.Amount {
		return fmt.Errorf("%w: %s %s", ErrBalanceOverflow, addr, c.Denom)
	}
	return balances.Save(kv, have+c.Amount, addr, c.Denom)
}

func debit(kv storage.KVStore, addr string, c sale.Coin) error {
	have, err := balanceOf(kv, addr, c.Denom)
	if err != nil {
		return err
	}
	if have < c.Amount {
		return fmt.Errorf("%w: %s has %d%s, needs %s", ErrInsufficientFunds, addr, have, c.Denom, c)
	}
	return balances.Save(kv, have-c.Amount, addr, c.Denom)
}

// transfer moves coins from one account to another.
func transfer(kv storage.KVStore, from, to string, coins sale.Coins) error {
	for _, c := range coins {
		if c.Amount == 0 {
			continue
		}
		if err := debit(kv, from, c); err != nil {
			return err
		}
		if err := credit(kv, to, c); err != nil {
			return err
		}
	}
	return nil
}
