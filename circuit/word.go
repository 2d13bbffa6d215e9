// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package circuit

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Word is a 256-bit quantity split into two 128-bit limbs so that each limb
// fits in a single field element. T is a value, a column, or a cell.
type Word[T any] struct {
	Lo T
	Hi T
}

func NewWord[T any](lo, hi T) Word[T] {
	return Word[T]{Lo: lo, Hi: hi}
}

func (w Word[T]) Limbs() [2]T {
	return [2]T{w.Lo, w.Hi}
}

// MapWord applies f to both limbs.
func MapWord[T, U any](w Word[T], f func(T) U) Word[U] {
	return Word[U]{Lo: f(w.Lo), Hi: f(w.Hi)}
}

func ZeroWord() Word[fr.Element] {
	return Word[fr.Element]{}
}

func WordFromUint64(v uint64) Word[fr.Element] {
	var w Word[fr.Element]
	w.Lo.SetUint64(v)
	return w
}

// WordFromUint256 splits x into its low and high 128 bits. A nil x is zero.
func WordFromUint256(x *uint256.Int) Word[fr.Element] {
	if x == nil {
		return ZeroWord()
	}
	return WordFromBytes32(x.Bytes32())
}

func WordFromBytes32(b [32]byte) Word[fr.Element] {
	var w Word[fr.Element]
	w.Hi.SetBytes(b[:16])
	w.Lo.SetBytes(b[16:])
	return w
}

func WordFromHash(h common.Hash) Word[fr.Element] {
	return WordFromBytes32(h)
}

func WordFromAddress(a common.Address) Word[fr.Element] {
	return WordFromBytes32(common.BytesToHash(a.Bytes()))
}

// WordToUint256 joins the limbs back together. Limbs wider than 128 bits
// are truncated.
func WordToUint256(w Word[fr.Element]) *uint256.Int {
	loBytes := w.Lo.Bytes()
	hiBytes := w.Hi.Bytes()
	var joined [32]byte
	copy(joined[:16], hiBytes[16:])
	copy(joined[16:], loBytes[16:])
	return new(uint256.Int).SetBytes32(joined[:])
}

func WordEqual(a, b Word[fr.Element]) bool {
	return a.Lo.Equal(&b.Lo) && a.Hi.Equal(&b.Hi)
}

// WordValues extracts the witness values of an assigned word.
func WordValues(w Word[AssignedCell]) Word[fr.Element] {
	return MapWord(w, func(c AssignedCell) fr.Element { return c.Value })
}

// WordCells extracts the provenance handles of an assigned word.
func WordCells(w Word[AssignedCell]) Word[Cell] {
	return MapWord(w, func(c AssignedCell) Cell { return c.Cell })
}
