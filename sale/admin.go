package sale

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bitfsorg/libmint-go/revshare"
	"github.com/bitfsorg/libmint-go/storage"
)

// authorize fails unless sender is the registered owner.
func authorize(kv storage.KVStore, sender string) error {
	st, err := config.Load(kv)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotInstantiated
	}
	if err != nil {
		return err
	}
	if st.Owner != sender {
		return ErrUnauthorized
	}
	return nil
}

// ChangeOwner replaces the owner. Only the current owner may call it.
func (c *Contract) ChangeOwner(kv storage.KVStore, info MessageInfo, newOwner string) (*Response, error) {
	if err := authorize(kv, info.Sender); err != nil {
		return nil, err
	}
	if err := c.addrs.Validate(newOwner); err != nil {
		return nil, err
	}
	if err := config.Save(kv, State{Owner: newOwner}); err != nil {
		return nil, err
	}
	return newResponse("change_owner").addAttribute("owner", newOwner), nil
}

// validateBeneficiaries checks every address and that the portions sum to one.
func (c *Contract) validateBeneficiaries(list []revshare.Beneficiary) error {
	for _, b := range list {
		if err := c.addrs.Validate(b.Address); err != nil {
			return err
		}
	}
	if err := revshare.ValidatePortions(list); err != nil {
		return fmt.Errorf("%w: %w", ErrWrongPortion, err)
	}
	return nil
}

// AddCollection registers a new collection and its beneficiary list.
// The pool must hold exactly TotalSupply items; nil means [1..TotalSupply].
func (c *Contract) AddCollection(kv storage.KVStore, info MessageInfo, list []revshare.Beneficiary, id string, cfg CollectionConfig) (*Response, error) {
	if err := authorize(kv, info.Sender); err != nil {
		return nil, err
	}
	if err := c.addrs.Validate(id); err != nil {
		return nil, err
	}
	exists, err := collections.Has(kv, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrCollectionExists, id)
	}

	itemPool := cfg.Pool
	if itemPool == nil {
		itemPool = sequentialPool(cfg.TotalSupply)
	}
	if uint64(len(itemPool)) != cfg.TotalSupply {
		return nil, fmt.Errorf("%w: pool has %d items, supply is %d", ErrWrongNumber, len(itemPool), cfg.TotalSupply)
	}
	seen := make(map[uint32]struct{}, len(itemPool))
	for _, n := range itemPool {
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: item %d appears twice in the pool", ErrWrongNumber, n)
		}
		seen[n] = struct{}{}
	}
	if err := c.validateBeneficiaries(list); err != nil {
		return nil, err
	}

	if err := beneficiaries.Save(kv, list, id); err != nil {
		return nil, err
	}
	if err := collections.Save(kv, newCollection(cfg, 0, itemPool, true), id); err != nil {
		return nil, err
	}
	return newResponse("add_collection").
		addAttribute("collection", id).
		addAttribute("total_supply", strconv.FormatUint(cfg.TotalSupply, 10)), nil
}

// UpdateCollection replaces the configuration and beneficiaries of an
// existing collection. The total supply, the minted count, the remaining
// pool and the is_active flag are carried over; cfg.TotalSupply and
// cfg.Pool are ignored.
func (c *Contract) UpdateCollection(kv storage.KVStore, info MessageInfo, list []revshare.Beneficiary, id string, cfg CollectionConfig) (*Response, error) {
	if err := authorize(kv, info.Sender); err != nil {
		return nil, err
	}
	if err := c.addrs.Validate(id); err != nil {
		return nil, err
	}
	old, err := loadCollection(kv, id)
	if err != nil {
		return nil, err
	}
	if err := c.validateBeneficiaries(list); err != nil {
		return nil, err
	}

	if err := beneficiaries.Save(kv, list, id); err != nil {
		return nil, err
	}
	cfg.TotalSupply = old.TotalSupply
	if err := collections.Save(kv, newCollection(cfg, old.MintedCount, old.RemainingPool, old.IsActive), id); err != nil {
		return nil, err
	}
	return newResponse("update_collection").addAttribute("collection", id), nil
}

// updateCollection applies fn to an existing collection on behalf of the owner.
func (c *Contract) updateCollection(kv storage.KVStore, info MessageInfo, id string, fn func(Collection) Collection) error {
	if err := authorize(kv, info.Sender); err != nil {
		return err
	}
	if _, err := loadCollection(kv, id); err != nil {
		return err
	}
	_, err := collections.Update(kv, func(col Collection) (Collection, error) {
		return fn(col), nil
	}, id)
	return err
}

// SetMintFlag sets the earliest block time, in unix seconds, at which
// the collection can be minted.
func (c *Contract) SetMintFlag(kv storage.KVStore, info MessageInfo, id string, startTime int64) (*Response, error) {
	err := c.updateCollection(kv, info, id, func(col Collection) Collection {
		col.SaleStartTime = startTime
		return col
	})
	if err != nil {
		return nil, err
	}
	return newResponse("set_mint_flag").
		addAttribute("collection", id).
		addAttribute("start_time", strconv.FormatInt(startTime, 10)), nil
}

// SetActive sets the legacy is_active flag. Mint does not consult it.
func (c *Contract) SetActive(kv storage.KVStore, info MessageInfo, id string, flag bool) (*Response, error) {
	err := c.updateCollection(kv, info, id, func(col Collection) Collection {
		col.IsActive = flag
		return col
	})
	if err != nil {
		return nil, err
	}
	return newResponse("set_active").
		addAttribute("collection", id).
		addAttribute("flag", strconv.FormatBool(flag)), nil
}

// SwitchSaleType overwrites the three phase flags as given. The flags are
// not required to be mutually exclusive.
func (c *Contract) SwitchSaleType(kv storage.KVStore, info MessageInfo, id string, publicOpen, privateOpen, freeOpen bool) (*Response, error) {
	err := c.updateCollection(kv, info, id, func(col Collection) Collection {
		col.PublicOpen = publicOpen
		col.PrivateOpen = privateOpen
		col.FreeOpen = freeOpen
		return col
	})
	if err != nil {
		return nil, err
	}
	return newResponse("switch_sale_type").
		addAttribute("collection", id).
		addAttribute("phase", phaseOf(Collection{PublicOpen: publicOpen, FreeOpen: freeOpen}).String()), nil
}

// AddFreeMinter marks every address as a free-minter of the collection.
func (c *Contract) AddFreeMinter(kv storage.KVStore, info MessageInfo, id string, addrs []string) (*Response, error) {
	if err := authorize(kv, info.Sender); err != nil {
		return nil, err
	}
	if _, err := loadCollection(kv, id); err != nil {
		return nil, err
	}
	for _, a := range addrs {
		if err := c.addrs.Validate(a); err != nil {
			return nil, err
		}
		if err := freeMinters.Save(kv, true, id, a); err != nil {
			return nil, err
		}
	}
	return newResponse("add_free_minter").
		addAttribute("collection", id).
		addAttribute("count", strconv.Itoa(len(addrs))), nil
}

// AddWhiteUsers sets each user's remaining private-phase allowance to Count.
func (c *Contract) AddWhiteUsers(kv storage.KVStore, info MessageInfo, id string, users []WhiteUser) (*Response, error) {
	if err := authorize(kv, info.Sender); err != nil {
		return nil, err
	}
	if _, err := loadCollection(kv, id); err != nil {
		return nil, err
	}
	for _, u := range users {
		if err := c.addrs.Validate(u.Address); err != nil {
			return nil, err
		}
		if err := whitelist.Save(kv, u.Count, id, u.Address); err != nil {
			return nil, err
		}
	}
	return newResponse("add_white_users").
		addAttribute("collection", id).
		addAttribute("count", strconv.Itoa(len(users))), nil
}
