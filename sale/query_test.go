package sale

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libmint-go/storage"
)

func TestQueryCollectionInfo_Price(t *testing.T) {
	h := newHarness(t)
	h.addCollection("c", baseConfig(), split("admin1", "1"))
	h.mustExec(owner, nil, ExecuteMsg{AddFreeMinter: &AddFreeMinterMsg{Collection: "c", Addresses: []string{"vip"}}})

	price := func(caller string) uint64 {
		var p uint64
		h.view(func(kv storage.KVStore) {
			info, err := h.c.QueryCollectionInfo(kv, "c", caller)
			require.NoError(t, err)
			p = info.Price
		})
		return p
	}
	flags := func(public, private, free bool) {
		h.mustExec(owner, nil, ExecuteMsg{SwitchSaleType: &SwitchSaleTypeMsg{
			Collection: "c", PublicOpen: public, PrivateOpen: private, FreeOpen: free,
		}})
	}

	assert.Equal(t, uint64(20), price("anyone"))
	assert.Equal(t, uint64(0), price("vip"))

	flags(true, true, false)
	assert.Equal(t, uint64(10), price("anyone"), "private is checked before public")

	flags(false, false, true)
	assert.Equal(t, uint64(0), price("anyone"))

	flags(false, false, false)
	assert.Equal(t, uint64(0), price("anyone"))
}

func TestQuery_JSON(t *testing.T) {
	h := newHarness(t)
	h.addCollection("c", baseConfig(), split("admin1", "0.7", "admin2", "0.3"))
	h.mustExec(owner, nil, ExecuteMsg{AddWhiteUsers: &AddWhiteUsersMsg{Collection: "c", Users: []WhiteUser{{Address: "wl", Count: 3}}}})
	_, err := h.mint("buyer", 20, "c")
	require.NoError(t, err)

	query := func(raw string) []byte {
		msg, err := ParseQueryMsg([]byte(raw))
		require.NoError(t, err)
		var out []byte
		h.view(func(kv storage.KVStore) {
			out, err = h.c.Query(kv, msg)
			require.NoError(t, err)
		})
		return out
	}

	assert.JSONEq(t, `{"owner":"creator"}`, string(query(`{"get_state_info":{}}`)))
	assert.JSONEq(t, `1`, string(query(`{"get_user_info":{"collection":"c","address":"buyer"}}`)))
	assert.JSONEq(t, `3`, string(query(`{"get_whitelist_info":{"collection":"c","address":"wl"}}`)))
	assert.JSONEq(t, `false`, string(query(`{"get_free_minter_info":{"collection":"c","address":"buyer"}}`)))
	assert.JSONEq(t,
		`[{"address":"admin1","portion":"0.7"},{"address":"admin2","portion":"0.3"}]`,
		string(query(`{"get_admin_info":{"collection":"c"}}`)))

	var info map[string]any
	require.NoError(t, json.Unmarshal(query(`{"get_collection_info":{"collection":"c","address":"buyer"}}`), &info))
	assert.Equal(t, "20", info["price"])
	assert.Equal(t, "20", info["public_price"])
	assert.Equal(t, float64(1), info["minted_count"])
	assert.Len(t, info["remaining_pool"], 9)
}

func TestQuery_Errors(t *testing.T) {
	h := newHarness(t)
	h.view(func(kv storage.KVStore) {
		_, err := h.c.Query(kv, QueryMsg{GetCollectionInfo: &BuyerQuery{Collection: "nope"}})
		assert.ErrorIs(t, err, ErrCollectionNotFound)

		_, err = h.c.Query(kv, QueryMsg{GetAdminInfo: &CollectionQuery{Collection: "nope"}})
		assert.ErrorIs(t, err, ErrCollectionNotFound)

		_, err = h.c.Query(kv, QueryMsg{})
		assert.ErrorIs(t, err, ErrInvalidMessage)
	})
}

func TestQuery_UnknownBuyerIsZero(t *testing.T) {
	h := newHarness(t)
	h.addCollection("c", baseConfig(), split("admin1", "1"))
	assert.Equal(t, uint64(0), h.userMints("c", "nobody"))
	assert.Equal(t, uint64(0), h.allowance("c", "nobody"))
}
