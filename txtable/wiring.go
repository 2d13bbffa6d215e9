// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/offchainlabs/txcircuit/circuit"
)

// TxTable holds the columns of the transaction table. Sibling components use
// it to address table cells when registering their own bindings.
type TxTable struct {
	TxID   circuit.Column
	Tag    circuit.Column
	Index  circuit.Column
	Value  circuit.Word[circuit.Column]
	Lookup circuit.LookupTable
}

func NewTxTable(cs *circuit.ConstraintSystem) *TxTable {
	t := &TxTable{
		TxID:  cs.AdviceColumn("tx.tx_id"),
		Tag:   cs.FixedColumn("tx.tag"),
		Index: cs.AdviceColumn("tx.index"),
		Value: circuit.NewWord(
			cs.AdviceColumn("tx.value.lo"),
			cs.AdviceColumn("tx.value.hi"),
		),
	}
	t.Lookup = cs.LookupTable("tx", t.Columns()...)
	return t
}

func (t *TxTable) Columns() []circuit.Column {
	return []circuit.Column{t.TxID, t.Tag, t.Index, t.Value.Lo, t.Value.Hi}
}

// ValueCells is the value of the row at offset.
func (t *TxTable) ValueCells(offset int) circuit.Word[circuit.Cell] {
	return circuit.NewWord(
		circuit.Cell{Column: t.Value.Lo, Row: offset},
		circuit.Cell{Column: t.Value.Hi, Row: offset},
	)
}

// FieldCells is the value of a static field of slot in a table of any
// capacity, since static rows precede calldata.
func (t *TxTable) FieldCells(slot int, tag FieldTag) (circuit.Word[circuit.Cell], error) {
	if slot < 0 {
		return circuit.Word[circuit.Cell]{}, fmt.Errorf("negative slot %d", slot)
	}
	if !tag.IsStatic() {
		return circuit.Word[circuit.Cell]{}, fmt.Errorf("%v is not a static field", tag)
	}
	return t.ValueCells(StaticRowOffset(slot, tag)), nil
}

// CalldataCells is the value of the k-th calldata row.
func (t *TxTable) CalldataCells(maxTxs, k int) circuit.Word[circuit.Cell] {
	return t.ValueCells(CalldataRowOffset(maxTxs, k))
}

// Assign writes every row of table into region, starting at row zero.
func (t *TxTable) Assign(region circuit.Region, table *Table) error {
	for offset, row := range table.Rows {
		if _, err := region.AssignAdvice("tx_id", t.TxID, offset, fr.NewElement(row.TxID)); err != nil {
			return err
		}
		if _, err := region.AssignFixed("tag", t.Tag, offset, fr.NewElement(uint64(row.Tag))); err != nil {
			return err
		}
		if _, err := region.AssignAdvice("index", t.Index, offset, fr.NewElement(row.Index)); err != nil {
			return err
		}
		if _, err := circuit.AssignWord(region, "value", t.Value, offset, row.Value); err != nil {
			return err
		}
	}
	return nil
}

// NewKeccakTable declares the columns of the keccak lookup table shared with
// the hashing component.
func NewKeccakTable(cs *circuit.ConstraintSystem) circuit.LookupTable {
	return cs.LookupTable("keccak",
		cs.FixedColumn("keccak.is_enabled"),
		cs.AdviceColumn("keccak.input_rlc"),
		cs.AdviceColumn("keccak.input_len"),
		cs.AdviceColumn("keccak.output.lo"),
		cs.AdviceColumn("keccak.output.hi"),
	)
}
