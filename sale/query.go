package sale

import (
	"errors"

	"github.com/bitfsorg/libmint-go/revshare"
	"github.com/bitfsorg/libmint-go/storage"
)

// CollectionInfo is the public view of a collection. Price is resolved for
// the querying address.
type CollectionInfo struct {
	Collection
	Price uint64 `json:"price,string"`
}

// QueryState returns the global owner record.
func (c *Contract) QueryState(kv storage.KVStore) (State, error) {
	st, err := config.Load(kv)
	if errors.Is(err, storage.ErrNotFound) {
		return st, ErrNotInstantiated
	}
	return st, err
}

// QueryCollectionInfo returns the collection with the price caller would see:
// zero for a free-minter, else the private price if private_open, else the
// public price if public_open, else zero.
func (c *Contract) QueryCollectionInfo(kv storage.KVStore, id, caller string) (CollectionInfo, error) {
	col, err := loadCollection(kv, id)
	if err != nil {
		return CollectionInfo{}, err
	}
	free, err := isFreeMinter(kv, id, caller)
	if err != nil {
		return CollectionInfo{}, err
	}
	return CollectionInfo{Collection: col, Price: displayPrice(col, free)}, nil
}

// QueryAdminInfo returns the beneficiary list of a collection.
func (c *Contract) QueryAdminInfo(kv storage.KVStore, id string) ([]revshare.Beneficiary, error) {
	list, ok, err := beneficiaries.MayLoad(kv, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return list, nil
}

// QueryUserInfo returns how many times buyer has minted from the collection.
func (c *Contract) QueryUserInfo(kv storage.KVStore, id, buyer string) (uint64, error) {
	n, _, err := userMints.MayLoad(kv, id, buyer)
	return n, err
}

// QueryWhitelistInfo returns the buyer's remaining private-phase allowance.
func (c *Contract) QueryWhitelistInfo(kv storage.KVStore, id, buyer string) (uint64, error) {
	n, _, err := whitelist.MayLoad(kv, id, buyer)
	return n, err
}

// QueryFreeMinterInfo reports whether buyer is a free-minter of the collection.
func (c *Contract) QueryFreeMinterInfo(kv storage.KVStore, id, buyer string) (bool, error) {
	return isFreeMinter(kv, id, buyer)
}
