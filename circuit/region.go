// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package circuit

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	ErrNotEnoughRows      = errors.New("not enough rows available")
	ErrCellConflict       = errors.New("cell already assigned a different value")
	ErrColumnType         = errors.New("wrong column type")
	ErrUnknownColumn      = errors.New("column not part of constraint system")
	ErrEqualityNotEnabled = errors.New("equality not enabled on column")
	ErrUnassignedCell     = errors.New("copy constraint references unassigned cell")
	ErrCopyMismatch       = errors.New("copy constrained cells differ")
)

// Region is the surface the proving engine exposes to a chip while it lays
// out one region of its witness. Offsets are rows.
type Region interface {
	AssignAdvice(annotation string, col Column, offset int, value fr.Element) (AssignedCell, error)
	AssignFixed(annotation string, col Column, offset int, value fr.Element) (AssignedCell, error)
	// ConstrainEqual registers a copy constraint between two cells. It is
	// declarative: nothing is computed until the proof is checked.
	ConstrainEqual(a, b Cell) error
}

type Layouter interface {
	AssignRegion(name string, assign func(Region) error) error
}

// CopyConstraint is one registered equality between two cells.
type CopyConstraint struct {
	Left   Cell
	Right  Cell
	Region string
}

// AssignWord assigns both limbs of value into the matching limbs of cols.
func AssignWord(region Region, annotation string, cols Word[Column], offset int, value Word[fr.Element]) (Word[AssignedCell], error) {
	lo, err := region.AssignAdvice(annotation+".lo", cols.Lo, offset, value.Lo)
	if err != nil {
		return Word[AssignedCell]{}, err
	}
	hi, err := region.AssignAdvice(annotation+".hi", cols.Hi, offset, value.Hi)
	if err != nil {
		return Word[AssignedCell]{}, err
	}
	return Word[AssignedCell]{Lo: lo, Hi: hi}, nil
}

// ConstrainWordEqual binds both limbs of a to the matching limbs of b.
func ConstrainWordEqual(region Region, a, b Word[Cell]) error {
	if err := region.ConstrainEqual(a.Lo, b.Lo); err != nil {
		return err
	}
	return region.ConstrainEqual(a.Hi, b.Hi)
}
