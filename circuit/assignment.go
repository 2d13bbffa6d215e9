// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package circuit

import (
	"fmt"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Assignment is an in-memory witness for a circuit of 2^k rows. It records
// every assigned cell and every copy constraint, and can check the copy
// constraints the way a verifier would.
//
// All regions start at row zero, so two regions sharing a column must not
// write the same row with different values.
//
// Not thread safe.
type Assignment struct {
	cs     *ConstraintSystem
	k      uint
	usable int
	cells  map[Cell]fr.Element
	copies []CopyConstraint
}

func NewAssignment(cs *ConstraintSystem, k uint, unusableRows int) (*Assignment, error) {
	if k >= 63 {
		return nil, fmt.Errorf("degree %d too large", k)
	}
	usable := (1 << k) - unusableRows
	if usable <= 0 {
		return nil, fmt.Errorf("%w: degree %d leaves no usable rows with %d unusable", ErrNotEnoughRows, k, unusableRows)
	}
	return &Assignment{
		cs:     cs,
		k:      k,
		usable: usable,
		cells:  make(map[Cell]fr.Element),
	}, nil
}

func (a *Assignment) K() uint {
	return a.k
}

func (a *Assignment) UsableRows() int {
	return a.usable
}

func (a *Assignment) AssignRegion(name string, assign func(Region) error) error {
	if err := assign(&regionView{a: a, name: name}); err != nil {
		return fmt.Errorf("region %q: %w", name, err)
	}
	return nil
}

// Value returns the value assigned to c, if any.
func (a *Assignment) Value(c Cell) (fr.Element, bool) {
	v, ok := a.cells[c]
	return v, ok
}

// Copies returns the registered copy constraints in registration order.
func (a *Assignment) Copies() []CopyConstraint {
	return append([]CopyConstraint(nil), a.copies...)
}

// ColumnValues returns the first n rows of col. Unassigned rows read as zero.
func (a *Assignment) ColumnValues(col Column, n int) []fr.Element {
	values := make([]fr.Element, n)
	for c, v := range a.cells {
		if c.Column == col && c.Row < n {
			values[c.Row] = v
		}
	}
	return values
}

// AssignedRows returns the number of rows used in col, that is one past the
// highest assigned row.
func (a *Assignment) AssignedRows(col Column) int {
	rows := 0
	for c := range a.cells {
		if c.Column == col && c.Row+1 > rows {
			rows = c.Row + 1
		}
	}
	return rows
}

// Verify checks every copy constraint: both ends must be assigned and hold
// the same value. Violations are reported in a stable order.
func (a *Assignment) Verify() error {
	var failures []string
	var first error
	for _, copyConstraint := range a.copies {
		left, leftOk := a.cells[copyConstraint.Left]
		right, rightOk := a.cells[copyConstraint.Right]
		var err error
		switch {
		case !leftOk:
			err = fmt.Errorf("%w: %v", ErrUnassignedCell, copyConstraint.Left)
		case !rightOk:
			err = fmt.Errorf("%w: %v", ErrUnassignedCell, copyConstraint.Right)
		case !left.Equal(&right):
			err = fmt.Errorf("%w: %v=%v, %v=%v", ErrCopyMismatch, copyConstraint.Left, left.String(), copyConstraint.Right, right.String())
		}
		if err == nil {
			continue
		}
		if first == nil {
			first = err
		}
		failures = append(failures, fmt.Sprintf("region %q: %v", copyConstraint.Region, err))
	}
	if first == nil {
		return nil
	}
	sort.Strings(failures)
	return fmt.Errorf("%d copy constraint(s) violated, first: %w (all: %v)", len(failures), first, failures)
}

func (a *Assignment) checkColumn(col Column) error {
	if col.Index < 0 || col.Index >= len(a.cs.columns) || a.cs.columns[col.Index] != col {
		return fmt.Errorf("%w: %v", ErrUnknownColumn, col)
	}
	return nil
}

func (a *Assignment) assign(col Column, offset int, value fr.Element) (AssignedCell, error) {
	if err := a.checkColumn(col); err != nil {
		return AssignedCell{}, err
	}
	if offset < 0 || offset >= a.usable {
		return AssignedCell{}, fmt.Errorf("%w: row %d of %d usable in %v", ErrNotEnoughRows, offset, a.usable, col)
	}
	cell := Cell{Column: col, Row: offset}
	if prev, ok := a.cells[cell]; ok && !prev.Equal(&value) {
		return AssignedCell{}, fmt.Errorf("%w: %v", ErrCellConflict, cell)
	}
	a.cells[cell] = value
	return AssignedCell{Cell: cell, Value: value}, nil
}

type regionView struct {
	a    *Assignment
	name string
}

func (r *regionView) AssignAdvice(annotation string, col Column, offset int, value fr.Element) (AssignedCell, error) {
	if col.Type != Advice {
		return AssignedCell{}, fmt.Errorf("%w: %s expects advice, got %v", ErrColumnType, annotation, col)
	}
	cell, err := r.a.assign(col, offset, value)
	if err != nil {
		return AssignedCell{}, fmt.Errorf("%s: %w", annotation, err)
	}
	return cell, nil
}

func (r *regionView) AssignFixed(annotation string, col Column, offset int, value fr.Element) (AssignedCell, error) {
	if col.Type != Fixed {
		return AssignedCell{}, fmt.Errorf("%w: %s expects fixed, got %v", ErrColumnType, annotation, col)
	}
	cell, err := r.a.assign(col, offset, value)
	if err != nil {
		return AssignedCell{}, fmt.Errorf("%s: %w", annotation, err)
	}
	return cell, nil
}

func (r *regionView) ConstrainEqual(left, right Cell) error {
	for _, cell := range []Cell{left, right} {
		if err := r.a.checkColumn(cell.Column); err != nil {
			return err
		}
		if !r.a.cs.EqualityEnabled(cell.Column) {
			return fmt.Errorf("%w: %v", ErrEqualityNotEnabled, cell.Column)
		}
		if cell.Row < 0 || cell.Row >= r.a.usable {
			return fmt.Errorf("%w: row %d of %d usable in %v", ErrNotEnoughRows, cell.Row, r.a.usable, cell.Column)
		}
	}
	r.a.copies = append(r.a.copies, CopyConstraint{Left: left, Right: right, Region: r.name})
	return nil
}
