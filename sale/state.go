package sale

import (
	"math"

	"github.com/bitfsorg/libmint-go/pool"
	"github.com/bitfsorg/libmint-go/revshare"
	"github.com/bitfsorg/libmint-go/storage"
)

// State is the global contract record.
type State struct {
	Owner string `json:"owner"`
}

// Collection is the stored configuration and counters of one collection.
// MintedCount + len(RemainingPool) == TotalSupply after every request.
type Collection struct {
	TotalSupply   uint64   `json:"total_supply"`
	MintedCount   uint64   `json:"minted_count"`
	RemainingPool []uint32 `json:"remaining_pool"`
	BaseURL       string   `json:"base_url"`
	ImageURL      string   `json:"image_url"`
	DisplayName   string   `json:"display_name"`
	Denom         string   `json:"denom"`
	PublicPrice   uint64   `json:"public_price,string"`
	PrivatePrice  uint64   `json:"private_price,string"`
	MaxPerUser    uint64   `json:"max_per_user"`
	SaleStartTime int64    `json:"sale_start_time"`
	PublicOpen    bool     `json:"public_open"`
	PrivateOpen   bool     `json:"private_open"`
	FreeOpen      bool     `json:"free_open"`
	IsActive      bool     `json:"is_active"`
}

var (
	config        = storage.NewItem[State]("config_state")
	collections   = storage.NewMap[Collection]("collection_info")
	beneficiaries = storage.NewMapWithCodec[[]revshare.Beneficiary]("admins", revshare.RegistryCodec{})
	userMints     = storage.NewMap[uint64]("user_info")
	whitelist     = storage.NewMap[uint64]("white_users")
	freeMinters   = storage.NewMap[bool]("free_minters")
)

func newCollection(cfg CollectionConfig, mintedCount uint64, pool []uint32, active bool) Collection {
	return Collection{
		TotalSupply:   cfg.TotalSupply,
		MintedCount:   mintedCount,
		RemainingPool: pool,
		BaseURL:       cfg.BaseURL,
		ImageURL:      cfg.ImageURL,
		DisplayName:   cfg.DisplayName,
		Denom:         cfg.Denom,
		PublicPrice:   cfg.PublicPrice,
		PrivatePrice:  cfg.PrivatePrice,
		MaxPerUser:    cfg.MaxPerUser,
		SaleStartTime: cfg.SaleStartTime,
		PublicOpen:    cfg.PublicOpen,
		PrivateOpen:   cfg.PrivateOpen,
		FreeOpen:      cfg.FreeOpen,
		IsActive:      active,
	}
}

func loadCollection(kv storage.KVStore, id string) (Collection, error) {
	c, ok, err := collections.MayLoad(kv, id)
	if err != nil {
		return c, err
	}
	if !ok {
		return c, ErrCollectionNotFound
	}
	return c, nil
}

func isFreeMinter(kv storage.KVStore, id, buyer string) (bool, error) {
	v, _, err := freeMinters.MayLoad(kv, id, buyer)
	return v, err
}

// sequentialPool returns [1..n], or nil when n does not fit a pool.
func sequentialPool(n uint64) []uint32 {
	if n > math.MaxUint32 {
		return nil
	}
	return pool.Sequential(uint32(n))
}
