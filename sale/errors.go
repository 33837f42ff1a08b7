package sale

import "errors"

var (
	// ErrUnauthorized indicates the sender is not the owner.
	ErrUnauthorized = errors.New("sale: unauthorized")

	// ErrCollectionNotFound indicates no collection is registered under the id.
	ErrCollectionNotFound = errors.New("sale: collection not found")

	// ErrCollectionExists indicates AddCollection targeted a registered id.
	ErrCollectionExists = errors.New("sale: collection already exists")

	// ErrMintNotStarted indicates the block time is before the sale start.
	ErrMintNotStarted = errors.New("sale: mint is not started yet")

	// ErrMintEnded indicates every item of the collection has been minted.
	ErrMintEnded = errors.New("sale: mint is ended")

	// ErrMintExceeded indicates the buyer has used up their cap or allowance.
	ErrMintExceeded = errors.New("sale: you can not mint anymore")

	// ErrNotWhitelisted indicates a private-phase mint by a buyer never listed.
	ErrNotWhitelisted = errors.New("sale: not whitelisted")

	// ErrNotEnough indicates the attached payment differs from the price.
	// Overpayment is rejected too.
	ErrNotEnough = errors.New("sale: not enough funds")

	// ErrWrongNumber indicates the item pool does not match the declared supply.
	ErrWrongNumber = errors.New("sale: wrong number")

	// ErrWrongPortion indicates beneficiary proportions do not sum to one.
	ErrWrongPortion = errors.New("sale: wrong portion")

	// ErrNotInstantiated indicates the owner record has not been written.
	ErrNotInstantiated = errors.New("sale: contract not instantiated")

	// ErrAlreadyInstantiated indicates a second Instantiate call.
	ErrAlreadyInstantiated = errors.New("sale: contract already instantiated")

	// ErrInvalidMessage indicates a message with zero or several variants set.
	ErrInvalidMessage = errors.New("sale: invalid message")

	// ErrInvalidCoin indicates a malformed coin string.
	ErrInvalidCoin = errors.New("sale: invalid coin")
)
