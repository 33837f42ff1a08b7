package sale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libmint-go/revshare"
	"github.com/bitfsorg/libmint-go/storage"
)

const (
	owner = "creator"
	denom = "ujunox"
)

// harness runs requests the way the host does: one transaction per request,
// rolled back on error, with the block height advancing after each one.
type harness struct {
	t   *testing.T
	db  *storage.MemDB
	c   *Contract
	env Env
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:  t,
		db: storage.NewMemDB(),
		c:  New(),
		env: Env{
			Block:    BlockInfo{Height: 12345, Time: time.Unix(1_700_000_000, 0), ChainID: "testing"},
			Contract: "sale_contract",
		},
	}
	err := h.db.Update(func(kv storage.KVStore) error {
		_, err := h.c.Instantiate(kv, h.env, MessageInfo{Sender: owner}, InstantiateMsg{Owner: owner})
		return err
	})
	require.NoError(t, err)
	return h
}

func (h *harness) exec(sender string, funds Coins, msg ExecuteMsg) (*Response, error) {
	var res *Response
	err := h.db.Update(func(kv storage.KVStore) error {
		r, err := h.c.Execute(kv, h.env, MessageInfo{Sender: sender, Funds: funds}, msg)
		res = r
		return err
	})
	h.env.Block.Height++
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (h *harness) mustExec(sender string, funds Coins, msg ExecuteMsg) *Response {
	h.t.Helper()
	res, err := h.exec(sender, funds, msg)
	require.NoError(h.t, err)
	return res
}

func (h *harness) mint(sender string, amount uint64, id string) (*Response, error) {
	var funds Coins
	if amount > 0 {
		funds = Coins{{Denom: denom, Amount: amount}}
	}
	return h.exec(sender, funds, ExecuteMsg{Mint: &MintMsg{Collection: id}})
}

func (h *harness) view(fn func(kv storage.KVStore)) {
	require.NoError(h.t, h.db.View(func(kv storage.KVStore) error {
		fn(kv)
		return nil
	}))
}

func (h *harness) collection(id string) Collection {
	h.t.Helper()
	var col Collection
	h.view(func(kv storage.KVStore) {
		info, err := h.c.QueryCollectionInfo(kv, id, "")
		require.NoError(h.t, err)
		col = info.Collection
	})
	return col
}

func (h *harness) userMints(id, buyer string) uint64 {
	var n uint64
	h.view(func(kv storage.KVStore) {
		var err error
		n, err = h.c.QueryUserInfo(kv, id, buyer)
		require.NoError(h.t, err)
	})
	return n
}

func (h *harness) allowance(id, buyer string) uint64 {
	var n uint64
	h.view(func(kv storage.KVStore) {
		var err error
		n, err = h.c.QueryWhitelistInfo(kv, id, buyer)
		require.NoError(h.t, err)
	})
	return n
}

func split(pairs ...string) []revshare.Beneficiary {
	out := make([]revshare.Beneficiary, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, revshare.Beneficiary{Address: pairs[i], Portion: revshare.MustParseDecimal(pairs[i+1])})
	}
	return out
}

// baseConfig is a public-phase collection of supply 10 with pool [1..10].
func baseConfig() CollectionConfig {
	return CollectionConfig{
		TotalSupply:   10,
		Pool:          []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		BaseURL:       "url",
		ImageURL:      "image_url",
		DisplayName:   "Collection1",
		Denom:         denom,
		PublicPrice:   20,
		PrivatePrice:  10,
		MaxPerUser:    1,
		SaleStartTime: 1_600_000_000,
		PublicOpen:    true,
	}
}

func (h *harness) addCollection(id string, cfg CollectionConfig, list []revshare.Beneficiary) {
	h.t.Helper()
	h.mustExec(owner, nil, ExecuteMsg{AddCollection: &AddCollectionMsg{
		Beneficiaries: list,
		Collection:    id,
		Config:        cfg,
	}})
}

func sends(res *Response) []BankSend {
	var out []BankSend
	for _, in := range res.Instructions {
		if in.Send != nil {
			out = append(out, *in.Send)
		}
	}
	return out
}

func mints(res *Response) []RegistryMint {
	var out []RegistryMint
	for _, in := range res.Instructions {
		if in.Mint != nil {
			out = append(out, *in.Mint)
		}
	}
	return out
}
