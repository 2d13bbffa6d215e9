// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/signverify"
	"github.com/offchainlabs/txcircuit/util/testhelpers"
)

func TestNewTransaction(t *testing.T) {
	source := testhelpers.NewPseudoRandomDataSource(t, 10)
	key := source.GetKey(t)
	to := source.GetAddress()
	data := source.GetData(40)
	gethTx := testhelpers.SignedLegacyTx(t, key, testChainID, 9, &to, big.NewInt(12345), data)

	tx, err := NewTransaction(gethTx, types.NewEIP155Signer(big.NewInt(testChainID)))
	require.NoError(t, err)
	require.Equal(t, uint64(9), tx.Nonce)
	require.Equal(t, gethTx.Gas(), tx.Gas)
	require.Equal(t, uint256.NewInt(1_000_000_000), tx.GasPrice)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), tx.From)
	require.Equal(t, to, tx.ToOrZero())
	require.False(t, tx.IsCreate())
	require.Equal(t, uint256.NewInt(12345), tx.Value)
	require.Equal(t, data, tx.CallData)
	require.Equal(t, gethTx.Hash(), tx.Geth().Hash())

	signData, err := tx.SignData(testChainID, signverify.DirectRecoverer{})
	require.NoError(t, err)
	require.Equal(t, tx.From, signData.Address)
	require.Equal(t, types.NewEIP155Signer(big.NewInt(testChainID)).Hash(gethTx), signData.MsgHash)
	require.Len(t, signData.Signature, crypto.SignatureLength)
	require.LessOrEqual(t, signData.Signature[crypto.RecoveryIDOffset], byte(1))
}

func TestNewTransactionRejects(t *testing.T) {
	key := testhelpers.NewPseudoRandomDataSource(t, 11).GetKey(t)
	gethTx := testhelpers.SignedLegacyTx(t, key, testChainID, 0, nil, big.NewInt(0), nil)

	_, err := NewTransaction(gethTx, types.NewEIP155Signer(big.NewInt(1)))
	require.ErrorIs(t, err, ErrSignatureDerivation)

	dynamic, err := types.SignNewTx(key, types.LatestSignerForChainID(big.NewInt(testChainID)), &types.DynamicFeeTx{
		ChainID:   big.NewInt(testChainID),
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(1),
		Gas:       21000,
	})
	require.NoError(t, err)
	_, err = NewTransaction(dynamic, types.LatestSignerForChainID(big.NewInt(testChainID)))
	require.ErrorIs(t, err, ErrUnsupportedTxType)
}

func TestContractCreation(t *testing.T) {
	key := testhelpers.NewPseudoRandomDataSource(t, 12).GetKey(t)
	gethTx := testhelpers.SignedLegacyTx(t, key, testChainID, 0, nil, big.NewInt(0), []byte{0x60, 0x00})
	tx, err := NewTransaction(gethTx, types.NewEIP155Signer(big.NewInt(testChainID)))
	require.NoError(t, err)
	require.True(t, tx.IsCreate())
	require.True(t, circuit.WordEqual(word(1), tx.fieldValue(IsCreate)))
	_, err = tx.SignData(testChainID, signverify.DirectRecoverer{})
	require.NoError(t, err)
}

func TestSignDataRejects(t *testing.T) {
	txs := signedTransactions(t, 13, nil)
	tx := txs[0]

	missing := *tx
	missing.R = nil
	_, err := missing.SignData(testChainID, signverify.DirectRecoverer{})
	require.ErrorIs(t, err, ErrSignatureDerivation)

	oversized := *tx
	oversized.S = new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = oversized.SignData(testChainID, signverify.DirectRecoverer{})
	require.ErrorIs(t, err, ErrSignatureDerivation)

	badV := *tx
	badV.V = new(big.Int).Add(tx.V, big.NewInt(2))
	_, err = badV.SignData(testChainID, signverify.DirectRecoverer{})
	require.ErrorIs(t, err, ErrSignatureDerivation)

	zeroR := *tx
	zeroR.R = new(big.Int)
	_, err = zeroR.SignData(testChainID, signverify.DirectRecoverer{})
	require.ErrorIs(t, err, ErrSignatureDerivation)
}

func TestCallDataGasCost(t *testing.T) {
	require.Equal(t, uint64(0), unsignedTransaction(nil).CallDataGasCost())
	require.Equal(t, uint64(4+4+16), unsignedTransaction([]byte{0, 0, 1}).CallDataGasCost())
}

func TestZeroTransaction(t *testing.T) {
	zero := ZeroTransaction()
	zero.Nonce = 5
	require.Equal(t, uint64(0), zeroTransaction.Nonce)
	require.True(t, ZeroTransaction().IsCreate())

	padding := PaddingSignData()
	require.True(t, padding.IsPadding())
	require.Equal(t, zeroTransaction.From, padding.Address)
}
