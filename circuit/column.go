// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package circuit

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

type ColumnType uint8

const (
	Advice ColumnType = iota
	Fixed
	Instance
)

func (t ColumnType) String() string {
	switch t {
	case Advice:
		return "advice"
	case Fixed:
		return "fixed"
	case Instance:
		return "instance"
	default:
		return fmt.Sprintf("column-type(%d)", uint8(t))
	}
}

// Column identifies one column of the constraint system. Columns are only
// ever created by a ConstraintSystem, and compare equal by value.
type Column struct {
	Index int
	Type  ColumnType
	Name  string
}

func (c Column) String() string {
	return fmt.Sprintf("%v[%d:%s]", c.Type, c.Index, c.Name)
}

// Cell is the provenance handle of a single assigned value. Two cells bound
// by a copy constraint must hold the same value for a proof to verify.
type Cell struct {
	Column Column
	Row    int
}

func (c Cell) String() string {
	return fmt.Sprintf("%v@%d", c.Column, c.Row)
}

type AssignedCell struct {
	Cell  Cell
	Value fr.Element
}

// LookupTable names the columns a sibling component exposes for lookups.
// It carries identifiers only.
type LookupTable struct {
	Name    string
	Columns []Column
}
