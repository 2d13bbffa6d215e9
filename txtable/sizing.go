// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/txcircuit/util/mathutil"
)

// unusableRows are reserved at the end of the circuit for blinding. No
// column is queried at more than 3 rotations.
const unusableRows = 6

func UnusableRows() int {
	return unusableRows
}

// RowEstimator reports how many rows signature verification needs.
type RowEstimator interface {
	MinNumRows(numVerif int) int
}

// MinNumRows is the minimum number of rows needed to lay out txsLen
// transactions with callDataLen calldata bytes and verify their signatures.
func MinNumRows(txsLen, callDataLen int, signVerify RowEstimator) int {
	if txsLen < 0 {
		txsLen = 0
	}
	if callDataLen < 0 {
		callDataLen = 0
	}
	tableLen := mathutil.SaturatingUAdd(mathutil.SaturatingUMul(uint64(txsLen), TxLen), uint64(callDataLen))
	return mathutil.MaxInt(mathutil.SaturatingToInt(tableLen), signVerify.MinNumRows(txsLen))
}

// MinNumRowsForWorkload sizes a circuit for exactly txs.
func MinNumRowsForWorkload(txs []*Transaction, signVerify RowEstimator) int {
	callDataLen := 0
	for _, tx := range txs {
		if tx != nil {
			callDataLen += len(tx.CallData)
		}
	}
	return MinNumRows(len(txs), callDataLen, signVerify)
}

// MinNumRowsForCapacity sizes a circuit for its configured maxima.
func MinNumRowsForCapacity(maxTxs, maxCalldata int, signVerify RowEstimator) int {
	return MinNumRows(maxTxs, maxCalldata, signVerify)
}

// MinNumRowsBlock returns the rows needed for the block's transactions and
// for the block's configured capacity.
func MinNumRowsBlock(block *Block, signVerify RowEstimator) (int, int) {
	return MinNumRowsForWorkload(block.Txs, signVerify), MinNumRowsForCapacity(block.MaxTxs, block.MaxCalldata, signVerify)
}

// Degree is the smallest k such that a circuit of 2^k rows has at least rows
// usable rows.
func Degree(rows int) uint {
	if rows < 0 {
		rows = 0
	}
	return uint(mathutil.Log2OfPowerOf2(mathutil.SaturatingUAdd(uint64(rows), unusableRows)))
}

// CapacityPolicy holds proving backend calibration for the cost of proving
// a batch. The values are measured, not derived.
type CapacityPolicy struct {
	RowsPerTx    uint64 `koanf:"rows-per-tx"`
	BaselineRows uint64 `koanf:"baseline-rows"`
}

var DefaultCapacityPolicy = CapacityPolicy{
	RowsPerTx:    140436,
	BaselineRows: 1 << 18,
}

func CapacityPolicyAddOptions(prefix string, f *flag.FlagSet) {
	f.Uint64(prefix+".rows-per-tx", DefaultCapacityPolicy.RowsPerTx, "rows needed to verify one transaction")
	f.Uint64(prefix+".baseline-rows", DefaultCapacityPolicy.BaselineRows, "rows taken by the lookup tables regardless of load")
}

// RequiredProvingRows is the number of rows the proving backend needs for
// maxTxs transactions.
func (p *CapacityPolicy) RequiredProvingRows(maxTxs int) int {
	if maxTxs < 0 {
		maxTxs = 0
	}
	rows := mathutil.SaturatingUMul(uint64(maxTxs), p.RowsPerTx)
	return mathutil.SaturatingToInt(mathutil.MaxInt(rows, p.BaselineRows))
}
