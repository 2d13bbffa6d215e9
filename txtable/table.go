// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/offchainlabs/txcircuit/circuit"
)

// Row is one entry of the transaction table. Index is only meaningful for
// CallData rows, where it is the byte offset within the transaction.
type Row struct {
	TxID  uint64
	Tag   FieldTag
	Index uint64
	Value circuit.Word[fr.Element]
}

// SlotHandle holds the row offsets within a slot that the signature
// verification outputs are bound to.
type SlotHandle struct {
	CallerAddress int
	TxSignHash    int
}

// Table is the fixed capacity row layout for one proof instance:
// the Null row, then TxLen static rows for each of MaxTxs slots, then
// MaxCalldata calldata rows. It is never modified after BuildTable.
type Table struct {
	MaxTxs      int
	MaxCalldata int
	ChainID     uint64
	Rows        []Row
	// Handles has one entry per slot.
	Handles []SlotHandle
	// CalldataLen counts the real calldata rows, the rest are padding.
	CalldataLen int
}

// TableLen is the number of rows of a table with the given capacity.
func TableLen(maxTxs, maxCalldata int) int {
	return 1 + maxTxs*TxLen + maxCalldata
}

// StaticRowOffset is the row of a static field of a slot.
func StaticRowOffset(slot int, tag FieldTag) int {
	return 1 + slot*TxLen + int(tag-Nonce)
}

// CalldataRowOffset is the row of the k-th calldata row.
func CalldataRowOffset(maxTxs, k int) int {
	return 1 + maxTxs*TxLen + k
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Field returns the static row for tag in slot.
func (t *Table) Field(slot int, tag FieldTag) (Row, error) {
	if slot < 0 || slot >= t.MaxTxs {
		return Row{}, fmt.Errorf("slot %d out of range [0, %d)", slot, t.MaxTxs)
	}
	if !tag.IsStatic() {
		return Row{}, fmt.Errorf("%v is not a static field", tag)
	}
	return t.Rows[StaticRowOffset(slot, tag)], nil
}

// CalldataRows returns the calldata region, padding included.
func (t *Table) CalldataRows() []Row {
	return t.Rows[CalldataRowOffset(t.MaxTxs, 0):]
}
