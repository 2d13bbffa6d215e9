// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package signverify

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidSignature = errors.New("invalid signature")

// SignData is everything the signature verification chip needs for one
// transaction. A nil PubKey marks the expected result of a padding slot: no
// signature is checked and Address is taken as is.
type SignData struct {
	// Signature is [R || S || V] with V in {0, 1}.
	Signature []byte
	PubKey    *ecdsa.PublicKey
	Address   common.Address
	MsgHash   common.Hash
}

func (d *SignData) IsPadding() bool {
	return d.PubKey == nil
}

// Recover recovers the signer of msgHash from a 65 byte signature.
func Recover(msgHash common.Hash, sig []byte) (SignData, error) {
	if len(sig) != crypto.SignatureLength {
		return SignData{}, fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	pub, err := crypto.SigToPub(msgHash[:], sig)
	if err != nil {
		return SignData{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return SignData{
		Signature: common.CopyBytes(sig),
		PubKey:    pub,
		Address:   crypto.PubkeyToAddress(*pub),
		MsgHash:   msgHash,
	}, nil
}

type Recoverer interface {
	Recover(msgHash common.Hash, sig []byte) (SignData, error)
}

type DirectRecoverer struct{}

func (DirectRecoverer) Recover(msgHash common.Hash, sig []byte) (SignData, error) {
	return Recover(msgHash, sig)
}
