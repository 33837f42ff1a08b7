package chain

import (
	"errors"

	"github.com/bitfsorg/libmint-go/address"
	"github.com/bitfsorg/libmint-go/sale"
)

var reasons = []struct {
	err  error
	name string
}{
	{sale.ErrUnauthorized, "unauthorized"},
	{sale.ErrCollectionNotFound, "collection_not_found"},
	{sale.ErrCollectionExists, "collection_exists"},
	{sale.ErrMintNotStarted, "mint_not_started"},
	{sale.ErrMintEnded, "mint_ended"},
	{sale.ErrMintExceeded, "mint_exceeded"},
	{sale.ErrNotWhitelisted, "not_whitelisted"},
	{sale.ErrNotEnough, "not_enough"},
	{sale.ErrWrongNumber, "wrong_number"},
	{sale.ErrWrongPortion, "wrong_portion"},
	{sale.ErrNotInstantiated, "not_instantiated"},
	{sale.ErrAlreadyInstantiated, "already_instantiated"},
	{sale.ErrInvalidMessage, "invalid_message"},
	{address.ErrInvalidAddress, "invalid_address"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrTokenExists, "token_exists"},
}

// Reason names the error kind of a rejected request for metrics.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return "other"
}
