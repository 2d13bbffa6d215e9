// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type ExportedRow struct {
	TxID  uint64        `json:"txId"`
	Tag   string        `json:"tag"`
	Index uint64        `json:"index"`
	Lo    hexutil.Bytes `json:"lo"`
	Hi    hexutil.Bytes `json:"hi"`
}

type ExportedTable struct {
	ChainID     hexutil.Uint64 `json:"chainId"`
	MaxTxs      int            `json:"maxTxs"`
	MaxCalldata int            `json:"maxCalldata"`
	Rows        []ExportedRow  `json:"rows"`
}

// limbBytes is the 16 byte big-endian form of a limb.
func limbBytes(e *fr.Element) hexutil.Bytes {
	b := e.Bytes()
	return append(hexutil.Bytes(nil), b[16:]...)
}

// Export converts the table to its JSON form, each limb as 16 bytes.
func (t *Table) Export() *ExportedTable {
	rows := make([]ExportedRow, 0, len(t.Rows))
	for i := range t.Rows {
		row := &t.Rows[i]
		rows = append(rows, ExportedRow{
			TxID:  row.TxID,
			Tag:   row.Tag.String(),
			Index: row.Index,
			Lo:    limbBytes(&row.Value.Lo),
			Hi:    limbBytes(&row.Value.Hi),
		})
	}
	return &ExportedTable{
		ChainID:     hexutil.Uint64(t.ChainID),
		MaxTxs:      t.MaxTxs,
		MaxCalldata: t.MaxCalldata,
		Rows:        rows,
	}
}
