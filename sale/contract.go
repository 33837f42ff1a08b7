// Package sale is the state-transition processor of a phased, multi-collection
// collectible sale: it allocates numbered items to buyers, enforces purchase
// limits and splits proceeds among registered beneficiaries.
//
// The host runs one request at a time inside a storage transaction and
// discards every write when a request returns an error.
package sale

import (
	"encoding/json"
	"fmt"

	"github.com/bitfsorg/libmint-go/address"
	"github.com/bitfsorg/libmint-go/storage"
)

// Option configures a Contract.
type Option func(*Contract)

// WithValidator sets the address validator. Default is address.Plain.
func WithValidator(v address.Validator) Option {
	return func(c *Contract) {
		c.addrs = v
	}
}

// Contract holds the entry points. It keeps no state of its own; all state
// lives in the KVStore passed to each call.
type Contract struct {
	addrs address.Validator
}

// New creates a Contract.
func New(opts ...Option) *Contract {
	c := &Contract{addrs: address.Plain{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Instantiate writes the owner record.
func (c *Contract) Instantiate(kv storage.KVStore, env Env, info MessageInfo, msg InstantiateMsg) (*Response, error) {
	if err := c.addrs.Validate(msg.Owner); err != nil {
		return nil, err
	}
	_, ok, err := config.MayLoad(kv)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, ErrAlreadyInstantiated
	}
	if err := config.Save(kv, State{Owner: msg.Owner}); err != nil {
		return nil, err
	}
	return newResponse("instantiate").addAttribute("owner", msg.Owner), nil
}

// Execute dispatches a state-changing request.
func (c *Contract) Execute(kv storage.KVStore, env Env, info MessageInfo, msg ExecuteMsg) (*Response, error) {
	if _, err := msg.Action(); err != nil {
		return nil, err
	}
	switch {
	case msg.Mint != nil:
		return c.Mint(kv, env, info, msg.Mint.Collection)
	case msg.ChangeOwner != nil:
		return c.ChangeOwner(kv, info, msg.ChangeOwner.Address)
	case msg.AddCollection != nil:
		m := msg.AddCollection
		return c.AddCollection(kv, info, m.Beneficiaries, m.Collection, m.Config)
	case msg.UpdateCollection != nil:
		m := msg.UpdateCollection
		return c.UpdateCollection(kv, info, m.Beneficiaries, m.Collection, m.Config)
	case msg.SetMintFlag != nil:
		return c.SetMintFlag(kv, info, msg.SetMintFlag.Collection, msg.SetMintFlag.StartTime)
	case msg.SetActive != nil:
		return c.SetActive(kv, info, msg.SetActive.Collection, msg.SetActive.Flag)
	case msg.AddFreeMinter != nil:
		return c.AddFreeMinter(kv, info, msg.AddFreeMinter.Collection, msg.AddFreeMinter.Addresses)
	case msg.SwitchSaleType != nil:
		m := msg.SwitchSaleType
		return c.SwitchSaleType(kv, info, m.Collection, m.PublicOpen, m.PrivateOpen, m.FreeOpen)
	default:
		return c.AddWhiteUsers(kv, info, msg.AddWhiteUsers.Collection, msg.AddWhiteUsers.Users)
	}
}

// Query dispatches a read-only request and returns the JSON-encoded result.
func (c *Contract) Query(kv storage.KVStore, msg QueryMsg) ([]byte, error) {
	if _, err := msg.Action(); err != nil {
		return nil, err
	}
	var (
		res any
		err error
	)
	switch {
	case msg.GetStateInfo != nil:
		res, err = c.QueryState(kv)
	case msg.GetCollectionInfo != nil:
		res, err = c.QueryCollectionInfo(kv, msg.GetCollectionInfo.Collection, msg.GetCollectionInfo.Address)
	case msg.GetUserInfo != nil:
		res, err = c.QueryUserInfo(kv, msg.GetUserInfo.Collection, msg.GetUserInfo.Address)
	case msg.GetAdminInfo != nil:
		res, err = c.QueryAdminInfo(kv, msg.GetAdminInfo.Collection)
	case msg.GetWhitelistInfo != nil:
		res, err = c.QueryWhitelistInfo(kv, msg.GetWhitelistInfo.Collection, msg.GetWhitelistInfo.Address)
	default:
		res, err = c.QueryFreeMinterInfo(kv, msg.GetFreeMinterInfo.Collection, msg.GetFreeMinterInfo.Address)
	}
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("sale: encode query result: %w", err)
	}
	return data, nil
}
