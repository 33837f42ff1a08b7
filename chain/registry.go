package chain

import (
	"fmt"

	"github.com/bitfsorg/libmint-go/sale"
	"github.com/bitfsorg/libmint-go/storage"
)

// Token is an item recorded by the external collectible registry.
type Token struct {
	Owner    string `json:"owner"`
	TokenURI string `json:"token_uri"`
	Image    string `json:"image"`
}

var tokens = storage.NewMap[Token]("registry_tokens")

// register records a minted item, rejecting a token id seen before.
func register(kv storage.KVStore, m sale.RegistryMint) error {
	exists, err := tokens.Has(kv, m.Contract, m.TokenID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s/%s", ErrTokenExists, m.Contract, m.TokenID)
	}
	return tokens.Save(kv, Token{Owner: m.Owner, TokenURI: m.TokenURI, Image: m.Extension.Image}, m.Contract, m.TokenID)
}
