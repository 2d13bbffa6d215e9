// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/offchainlabs/txcircuit/compress"
)

func TestExport(t *testing.T) {
	tx := unsignedTransaction([]byte{0xab})
	table, err := BuildTable([]*Transaction{tx}, 1, 2, testChainID, fakeSignResults(1))
	require.NoError(t, err)

	exported := table.Export()
	require.Equal(t, hexutil.Uint64(testChainID), exported.ChainID)
	require.Len(t, exported.Rows, table.Len())
	require.Equal(t, "Null", exported.Rows[0].Tag)

	caller := exported.Rows[StaticRowOffset(0, CallerAddress)]
	require.Equal(t, "CallerAddress", caller.Tag)
	require.Len(t, caller.Lo, 16)
	require.Len(t, caller.Hi, 16)
	joined := append(append([]byte{}, caller.Hi...), caller.Lo...)
	require.Equal(t, common.BytesToHash(tx.From.Bytes()), common.BytesToHash(joined))

	calldata := exported.Rows[CalldataRowOffset(1, 0)]
	require.Equal(t, ExportedRow{TxID: 1, Tag: "CallData", Index: 0, Lo: hexutil.Bytes(common.LeftPadBytes([]byte{0xab}, 16)), Hi: make(hexutil.Bytes, 16)}, calldata)

	encoded, err := json.Marshal(exported)
	require.NoError(t, err)
	compressed, err := compress.CompressWell(encoded)
	require.NoError(t, err)
	decompressed, err := compress.Decompress(compressed, len(encoded))
	require.NoError(t, err)

	var decoded ExportedTable
	require.NoError(t, json.Unmarshal(decompressed, &decoded))
	require.Equal(t, *exported, decoded)
}
