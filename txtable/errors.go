// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import "errors"

var (
	ErrInputTooLarge       = errors.New("more transactions than slots")
	ErrCalldataOverflow    = errors.New("calldata exceeds capacity")
	ErrSignatureDerivation = errors.New("failed to derive signature data")
	ErrBindingRange        = errors.New("fewer signature results than slots")
	ErrInvalidCapacity     = errors.New("invalid table capacity")
	ErrUnsupportedTxType   = errors.New("unsupported transaction type")
	ErrNilTransaction      = errors.New("nil transaction")
)
