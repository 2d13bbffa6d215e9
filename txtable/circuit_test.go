// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/signverify"
)

func synthesizeCircuit(t *testing.T, txCircuit *TxCircuit, setup *testSetup) (*Table, error) {
	t.Helper()
	return txCircuit.Synthesize(setup.config, setup.assignment)
}

func TestTxCircuitSynthesize(t *testing.T) {
	txs := signedTransactions(t, 1, []byte{1, 2, 3}, nil)
	maxTxs, maxCalldata := 3, 64
	setup := newTestSetup(t, maxTxs, 12)
	txCircuit := NewTxCircuit(maxTxs, maxCalldata, testChainID, txs, setup.chip)

	table, err := synthesizeCircuit(t, txCircuit, setup)
	require.NoError(t, err)
	require.NoError(t, setup.assignment.Verify())
	require.Equal(t, TableLen(maxTxs, maxCalldata), table.Len())
	require.Equal(t, table.Len(), setup.assignment.AssignedRows(setup.config.TxTable.Value.Lo))

	copies := setup.assignment.Copies()
	require.Len(t, copies, 4*maxTxs)
	for _, copyConstraint := range copies {
		require.Equal(t, "tx table", copyConstraint.Region)
	}

	txTable := setup.config.TxTable
	for slot, tx := range txs {
		caller, err := txTable.FieldCells(slot, CallerAddress)
		require.NoError(t, err)
		lo, ok := setup.assignment.Value(caller.Lo)
		require.True(t, ok)
		hi, ok := setup.assignment.Value(caller.Hi)
		require.True(t, ok)
		require.True(t, circuit.WordEqual(circuit.WordFromAddress(tx.From), circuit.NewWord(lo, hi)))

		signHash, err := table.Field(slot, TxSignHash)
		require.NoError(t, err)
		require.True(t, circuit.WordEqual(circuit.WordFromHash(tx.SignHash(testChainID)), signHash.Value))
	}
	padding, err := table.Field(2, TxSignHash)
	require.NoError(t, err)
	require.True(t, circuit.WordEqual(circuit.ZeroWord(), padding.Value))
}

func TestTxCircuitBindsBothLimbs(t *testing.T) {
	txs := signedTransactions(t, 2, []byte{0xff})
	setup := newTestSetup(t, 1, 12)
	_, err := synthesizeCircuit(t, NewTxCircuit(1, 4, testChainID, txs, setup.chip), setup)
	require.NoError(t, err)

	txTable := setup.config.TxTable
	signConfig := setup.chip.Config()
	var bound []circuit.CopyConstraint
	for _, copyConstraint := range setup.assignment.Copies() {
		if copyConstraint.Left.Column == txTable.Value.Lo || copyConstraint.Left.Column == txTable.Value.Hi {
			bound = append(bound, copyConstraint)
		}
	}
	require.Equal(t, []circuit.CopyConstraint{
		{Left: circuit.Cell{Column: txTable.Value.Lo, Row: StaticRowOffset(0, CallerAddress)}, Right: circuit.Cell{Column: signConfig.Address.Lo, Row: 0}, Region: "tx table"},
		{Left: circuit.Cell{Column: txTable.Value.Hi, Row: StaticRowOffset(0, CallerAddress)}, Right: circuit.Cell{Column: signConfig.Address.Hi, Row: 0}, Region: "tx table"},
		{Left: circuit.Cell{Column: txTable.Value.Lo, Row: StaticRowOffset(0, TxSignHash)}, Right: circuit.Cell{Column: signConfig.MsgHash.Lo, Row: 0}, Region: "tx table"},
		{Left: circuit.Cell{Column: txTable.Value.Hi, Row: StaticRowOffset(0, TxSignHash)}, Right: circuit.Cell{Column: signConfig.MsgHash.Hi, Row: 0}, Region: "tx table"},
	}, bound)
}

func TestTxCircuitPaddingOnly(t *testing.T) {
	setup := newTestSetup(t, 4, 12)
	table, err := synthesizeCircuit(t, NewTxCircuit(4, 8, testChainID, nil, setup.chip), setup)
	require.NoError(t, err)
	require.NoError(t, setup.assignment.Verify())
	require.Equal(t, 0, table.CalldataLen)
	require.Len(t, setup.assignment.Copies(), 16)
}

func TestTxCircuitTamperedCaller(t *testing.T) {
	txs := signedTransactions(t, 3, []byte{1})
	txs[0].From = common.HexToAddress("0x1111111111111111111111111111111111111111")
	setup := newTestSetup(t, 2, 12)

	_, err := synthesizeCircuit(t, NewTxCircuit(2, 8, testChainID, txs, setup.chip), setup)
	require.NoError(t, err)
	require.ErrorIs(t, setup.assignment.Verify(), circuit.ErrCopyMismatch)
}

func TestTxCircuitRejects(t *testing.T) {
	t.Run("too many transactions", func(t *testing.T) {
		txs := signedTransactions(t, 4, nil, nil)
		setup := newTestSetup(t, 1, 12)
		_, err := synthesizeCircuit(t, NewTxCircuit(1, 8, testChainID, txs, setup.chip), setup)
		require.ErrorIs(t, err, ErrInputTooLarge)
	})
	t.Run("wrong chain", func(t *testing.T) {
		txs := signedTransactions(t, 5, nil)
		setup := newTestSetup(t, 1, 12)
		_, err := synthesizeCircuit(t, NewTxCircuit(1, 8, 1, txs, setup.chip), setup)
		require.ErrorIs(t, err, ErrSignatureDerivation)
	})
	t.Run("pre-EIP-155 v", func(t *testing.T) {
		txs := signedTransactions(t, 6, nil)
		txs[0].V = big.NewInt(27)
		setup := newTestSetup(t, 1, 12)
		_, err := synthesizeCircuit(t, NewTxCircuit(1, 8, testChainID, txs, setup.chip), setup)
		require.ErrorIs(t, err, ErrSignatureDerivation)
	})
	t.Run("calldata overflow", func(t *testing.T) {
		txs := signedTransactions(t, 7, []byte{1, 2, 3})
		setup := newTestSetup(t, 1, 12)
		_, err := synthesizeCircuit(t, NewTxCircuit(1, 2, testChainID, txs, setup.chip), setup)
		require.ErrorIs(t, err, ErrCalldataOverflow)
	})
	t.Run("too few rows", func(t *testing.T) {
		setup := newTestSetup(t, 8, 6)
		_, err := synthesizeCircuit(t, NewTxCircuit(8, 8, testChainID, nil, setup.chip), setup)
		require.ErrorIs(t, err, circuit.ErrNotEnoughRows)
	})
}

// shortVerifier drops the last result.
type shortVerifier struct {
	*signverify.Chip
}

func (v shortVerifier) Assign(layouter circuit.Layouter, signDatas []signverify.SignData) ([]signverify.AssignedSignatureVerify, error) {
	results, err := v.Chip.Assign(layouter, signDatas)
	if err != nil {
		return nil, err
	}
	return results[:len(results)-1], nil
}

func TestTxCircuitShortVerifier(t *testing.T) {
	setup := newTestSetup(t, 2, 12)
	_, err := synthesizeCircuit(t, NewTxCircuit(2, 8, testChainID, nil, shortVerifier{setup.chip}), setup)
	require.ErrorIs(t, err, ErrBindingRange)
}

func TestBindSignaturesRange(t *testing.T) {
	setup := newTestSetup(t, 2, 12)
	table, err := BuildTable(nil, 2, 0, testChainID, fakeSignResults(2))
	require.NoError(t, err)
	err = setup.assignment.AssignRegion("bind", func(region circuit.Region) error {
		return BindSignatures(region, setup.config.TxTable, table, fakeSignResults(1))
	})
	require.ErrorIs(t, err, ErrBindingRange)
}

func TestTxCircuitRecoveryCache(t *testing.T) {
	txs := signedTransactions(t, 8, []byte{4}, []byte{5})
	cache := signverify.NewRecoveryCache(8)
	for i := 0; i < 2; i++ {
		setup := newTestSetup(t, 2, 12)
		txCircuit := NewTxCircuit(2, 8, testChainID, txs, setup.chip)
		txCircuit.Recoverer = cache
		_, err := synthesizeCircuit(t, txCircuit, setup)
		require.NoError(t, err)
		require.NoError(t, setup.assignment.Verify())
	}
	require.Equal(t, 2, cache.Len())
}

func TestTxCircuitSizing(t *testing.T) {
	txs := signedTransactions(t, 9, []byte{1, 2})
	block := &Block{Txs: txs, ChainID: testChainID, MaxTxs: 4, MaxCalldata: 128}
	setup := newTestSetup(t, block.MaxTxs, 12)
	txCircuit := NewTxCircuitFromBlock(block, setup.chip)

	workload, capacity := txCircuit.MinNumRows()
	require.Equal(t, signverify.MinNumRows(1), workload)
	require.Equal(t, signverify.MinNumRows(4), capacity)
	require.Equal(t, Degree(capacity), txCircuit.Degree())
	require.Equal(t, [][]fr.Element{{}}, txCircuit.Instance())
}

func TestTxCircuitNilTransaction(t *testing.T) {
	setup := newTestSetup(t, 2, 12)
	txs := append(signedTransactions(t, 10, nil), nil)
	txCircuit := NewTxCircuit(2, 8, testChainID, txs, setup.chip)

	_, err := synthesizeCircuit(t, txCircuit, setup)
	require.ErrorIs(t, err, ErrNilTransaction)
	workload, _ := txCircuit.MinNumRows()
	require.Equal(t, signverify.MinNumRows(2), workload)
}

func TestCircuitConfigColumns(t *testing.T) {
	setup := newTestSetup(t, 1, 12)

	var names []string
	for _, table := range setup.cs.LookupTables() {
		names = append(names, table.Name)
	}
	require.ElementsMatch(t, []string{"tx", "keccak"}, names)
	require.Equal(t, setup.config.TxTable.Columns(), setup.config.TxTable.Lookup.Columns)

	require.Equal(t, circuit.Instance, setup.config.Instance.Type)
	require.Contains(t, setup.cs.Columns(), setup.config.Instance)
	require.True(t, setup.cs.EqualityEnabled(setup.config.TxTable.Value.Lo))
	require.True(t, setup.cs.EqualityEnabled(setup.config.TxTable.Value.Hi))
	require.False(t, setup.cs.EqualityEnabled(setup.config.TxTable.TxID))
	require.False(t, setup.cs.EqualityEnabled(setup.config.Instance))
}
