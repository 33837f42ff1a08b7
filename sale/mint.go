package sale

import (
	"fmt"
	"strconv"

	"github.com/bitfsorg/libmint-go/entropy"
	"github.com/bitfsorg/libmint-go/pool"
	"github.com/bitfsorg/libmint-go/revshare"
	"github.com/bitfsorg/libmint-go/storage"
)

// Mint allocates one random unassigned item of collection id to the sender.
//
// The response carries a registry mint instruction for the item followed,
// when the sender paid, by one bank send per beneficiary in list order.
func (c *Contract) Mint(kv storage.KVStore, env Env, info MessageInfo, id string) (*Response, error) {
	if err := c.addrs.Validate(id); err != nil {
		return nil, err
	}
	buyer := info.Sender

	col, err := loadCollection(kv, id)
	if err != nil {
		return nil, err
	}
	if env.Block.Time.Unix() < col.SaleStartTime {
		return nil, ErrMintNotStarted
	}
	if col.MintedCount >= col.TotalSupply {
		return nil, ErrMintEnded
	}

	free, err := isFreeMinter(kv, id, buyer)
	if err != nil {
		return nil, err
	}
	q, err := checkEligibility(kv, id, col, buyer, free)
	if err != nil {
		return nil, err
	}
	if q.paid {
		if got := info.Funds.AmountOf(col.Denom); got != q.price {
			return nil, fmt.Errorf("%w: attached %d%s, price %d%s", ErrNotEnough, got, col.Denom, q.price, col.Denom)
		}
	}

	rng, err := entropy.ForTx(env.entropyContext(buyer))
	if err != nil {
		return nil, err
	}
	n, rest, err := pool.Draw(col.RemainingPool, rng)
	if err != nil {
		return nil, fmt.Errorf("sale: collection %s minted=%d supply=%d: %w", id, col.MintedCount, col.TotalSupply, err)
	}
	col.MintedCount++
	col.RemainingPool = rest
	if err := collections.Save(kv, col, id); err != nil {
		return nil, err
	}

	item := pool.Describe(col.DisplayName, col.BaseURL, col.ImageURL, n)
	res := newResponse("mint").
		addAttribute("collection", id).
		addAttribute("phase", q.phase.String()).
		addAttribute("token_id", item.TokenID).
		addAttribute("owner", buyer).
		addAttribute("price", strconv.FormatUint(q.price, 10))
	res.addMint(id, buyer, item)

	if !q.paid || q.price == 0 {
		return res, nil
	}
	list, err := beneficiaries.Load(kv, id)
	if err != nil {
		return nil, err
	}
	payouts, err := revshare.Split(q.price, list)
	if err != nil {
		return nil, fmt.Errorf("sale: split %d%s: %w", q.price, col.Denom, err)
	}
	if err := revshare.ValidateConservation(q.price, payouts); err != nil {
		return nil, fmt.Errorf("sale: split %d%s: %w", q.price, col.Denom, err)
	}
	for _, p := range payouts {
		if p.Amount == 0 {
			continue
		}
		res.addSend(p.Address, Coin{Denom: col.Denom, Amount: p.Amount})
	}
	return res, nil
}
