// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/signverify"
	"github.com/offchainlabs/txcircuit/util/testhelpers"
)

const testChainID = 1337

type testSetup struct {
	cs         *circuit.ConstraintSystem
	config     *CircuitConfig
	chip       *signverify.Chip
	assignment *circuit.Assignment
}

func newTestSetup(t *testing.T, maxTxs int, k uint) *testSetup {
	t.Helper()
	cs := circuit.NewConstraintSystem()
	config := NewCircuitConfig(cs, ConfigArgs{TxTable: NewTxTable(cs), KeccakTable: NewKeccakTable(cs)})
	assignment, err := circuit.NewAssignment(cs, k, UnusableRows())
	require.NoError(t, err)
	return &testSetup{
		cs:         cs,
		config:     config,
		chip:       signverify.NewChip(config.SignVerify, maxTxs),
		assignment: assignment,
	}
}

// fakeSignResults gives slot i the message hash i+100. The cells are not
// part of any assignment.
func fakeSignResults(n int) []signverify.AssignedSignatureVerify {
	results := make([]signverify.AssignedSignatureVerify, n)
	for i := range results {
		hash := circuit.WordFromUint64(uint64(i + 100))
		results[i].MsgHash = circuit.NewWord(
			circuit.AssignedCell{Cell: circuit.Cell{Row: i}, Value: hash.Lo},
			circuit.AssignedCell{Cell: circuit.Cell{Row: i}, Value: hash.Hi},
		)
	}
	return results
}

func signedTransactions(t *testing.T, salt int, calldata ...[]byte) []*Transaction {
	t.Helper()
	source := testhelpers.NewPseudoRandomDataSource(t, salt)
	signer := types.NewEIP155Signer(big.NewInt(testChainID))
	txs := make([]*Transaction, 0, len(calldata))
	for i, data := range calldata {
		to := source.GetAddress()
		gethTx := testhelpers.SignedLegacyTx(t, source.GetKey(t), testChainID, uint64(i), &to, big.NewInt(int64(i+1)), data)
		tx, err := NewTransaction(gethTx, signer)
		testhelpers.RequireImpl(t, err)
		txs = append(txs, tx)
	}
	return txs
}

func unsignedTransaction(calldata []byte) *Transaction {
	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	return &Transaction{
		Nonce:    3,
		Gas:      50000,
		GasPrice: uint256.NewInt(7),
		From:     common.HexToAddress("0x00000000000000000000000000000000000000bb"),
		To:       &to,
		Value:    uint256.NewInt(11),
		CallData: calldata,
	}
}

func word(v uint64) circuit.Word[fr.Element] {
	return circuit.WordFromUint64(v)
}
