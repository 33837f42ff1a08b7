package chain

import "errors"

var (
	// ErrInsufficientFunds indicates an account cannot cover a transfer.
	ErrInsufficientFunds = errors.New("chain: insufficient funds")

	// ErrTokenExists indicates the registry already holds the token id.
	ErrTokenExists = errors.New("chain: token already minted")

	// ErrTokenNotFound indicates the registry has no such token id.
	ErrTokenNotFound = errors.New("chain: token not found")

	// ErrBalanceOverflow indicates a credit would overflow an account balance.
	ErrBalanceOverflow = errors.New("chain: balance overflow")
)
