// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/offchainlabs/txcircuit/signverify"
)

type fixedEstimator int

func (e fixedEstimator) MinNumRows(int) int {
	return int(e)
}

func TestMinNumRows(t *testing.T) {
	calibration := signverify.DefaultCalibration
	cases := []struct {
		txs      int
		calldata int
		want     int
	}{
		{0, 0, 295188},
		{2, 100, 295188},
		{3, 0, 314319},
		{1, 1_000_000, 1_000_010},
		{-1, -1, 295188},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, MinNumRows(tc.txs, tc.calldata, calibration), "txs %d calldata %d", tc.txs, tc.calldata)
	}
	require.Equal(t, 25, MinNumRows(2, 5, fixedEstimator(0)))
	require.Equal(t, 100, MinNumRows(2, 5, fixedEstimator(100)))
	require.Equal(t, math.MaxInt, MinNumRows(math.MaxInt, math.MaxInt, fixedEstimator(0)))
}

func TestMinNumRowsMonotonic(t *testing.T) {
	calibration := signverify.DefaultCalibration
	for txs := 0; txs < 8; txs++ {
		for calldata := 0; calldata < 1<<20; calldata += 1 << 16 {
			rows := MinNumRows(txs, calldata, calibration)
			require.LessOrEqual(t, rows, MinNumRows(txs+1, calldata, calibration))
			require.LessOrEqual(t, rows, MinNumRows(txs, calldata+1<<16, calibration))
		}
	}
}

func TestMinNumRowsForWorkload(t *testing.T) {
	txs := []*Transaction{unsignedTransaction([]byte{1, 2, 3}), unsignedTransaction(nil)}
	require.Equal(t, 23, MinNumRowsForWorkload(txs, fixedEstimator(0)))
	require.Equal(t, 0, MinNumRowsForWorkload(nil, fixedEstimator(0)))
	require.Equal(t, 42, MinNumRowsForCapacity(4, 2, fixedEstimator(0)))
}

func TestDegree(t *testing.T) {
	cases := []struct {
		rows int
		want uint
	}{
		{0, 3},
		{2, 3},
		{3, 4},
		{10, 4},
		{11, 5},
		{1<<20 - 6, 20},
		{1<<20 - 5, 21},
		{295188, 19},
		{-5, 3},
	}
	for _, tc := range cases {
		k := Degree(tc.rows)
		require.Equal(t, tc.want, k, "rows %d", tc.rows)
		if tc.rows >= 0 {
			require.GreaterOrEqual(t, (1<<k)-UnusableRows(), tc.rows)
		}
	}
}

func TestRequiredProvingRows(t *testing.T) {
	policy := DefaultCapacityPolicy
	require.Equal(t, 1<<18, policy.RequiredProvingRows(0))
	require.Equal(t, 1<<18, policy.RequiredProvingRows(1))
	require.Equal(t, 280872, policy.RequiredProvingRows(2))
	require.Equal(t, 16*140436, policy.RequiredProvingRows(16))
	require.Equal(t, 1<<18, policy.RequiredProvingRows(-3))
	require.Equal(t, math.MaxInt, policy.RequiredProvingRows(math.MaxInt))
}
