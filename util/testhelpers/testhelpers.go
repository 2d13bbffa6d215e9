// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package testhelpers

import (
	"crypto/ecdsa"
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Fail a test should an error occur
func RequireImpl(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatal(printables, err)
	}
}

func FailImpl(t *testing.T, printables ...interface{}) {
	t.Helper()
	t.Fatal(printables...)
}

func RandomizeSlice(slice []byte) []byte {
	_, err := rand.Read(slice)
	if err != nil {
		panic(err)
	}
	return slice
}

func RandomSlice(size uint64) []byte {
	return RandomizeSlice(make([]byte, size))
}

func RandomHash() common.Hash {
	var hash common.Hash
	RandomizeSlice(hash[:])
	return hash
}

func RandomAddress() common.Address {
	var address common.Address
	RandomizeSlice(address[:])
	return address
}

func RandomCallValue(limit int64) *big.Int {
	return big.NewInt(rand.Int63n(limit))
}

// SignedLegacyTx signs an EIP-155 legacy transaction with key.
// A nil to creates a contract creation transaction.
func SignedLegacyTx(t *testing.T, key *ecdsa.PrivateKey, chainID uint64, nonce uint64, to *common.Address, value *big.Int, data []byte) *types.Transaction {
	t.Helper()
	inner := &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: big.NewInt(1_000_000_000),
		Gas:      21000 + uint64(len(data))*16,
		To:       to,
		Value:    value,
		Data:     data,
	}
	signer := types.NewEIP155Signer(new(big.Int).SetUint64(chainID))
	tx, err := types.SignNewTx(key, signer, inner)
	RequireImpl(t, err)
	return tx
}

// RandomSignedTxs returns count transactions from freshly generated keys,
// each carrying dataLen bytes of calldata.
func RandomSignedTxs(t *testing.T, chainID uint64, count int, dataLen uint64) []*types.Transaction {
	t.Helper()
	txs := make([]*types.Transaction, 0, count)
	for i := 0; i < count; i++ {
		key, err := crypto.GenerateKey()
		RequireImpl(t, err)
		to := RandomAddress()
		txs = append(txs, SignedLegacyTx(t, key, chainID, uint64(i), &to, RandomCallValue(1_000_000), RandomSlice(dataLen)))
	}
	return txs
}
