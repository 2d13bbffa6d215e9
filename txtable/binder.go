// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"fmt"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/signverify"
)

// BindSignatures registers, for every slot including padding slots, copy
// constraints tying the CallerAddress and TxSignHash cells of the table to
// the address and message hash output by signature verification. Both limbs
// of each word are bound.
func BindSignatures(region circuit.Region, txTable *TxTable, table *Table, signResults []signverify.AssignedSignatureVerify) error {
	if len(signResults) < table.MaxTxs {
		return fmt.Errorf("%w: %d < %d", ErrBindingRange, len(signResults), table.MaxTxs)
	}
	if len(table.Handles) != table.MaxTxs {
		return fmt.Errorf("%w: table has %d slot handles for %d slots", ErrBindingRange, len(table.Handles), table.MaxTxs)
	}
	for slot, handle := range table.Handles {
		result := signResults[slot]
		err := circuit.ConstrainWordEqual(region, txTable.ValueCells(handle.CallerAddress), circuit.WordCells(result.Address))
		if err != nil {
			return fmt.Errorf("binding caller address of slot %d: %w", slot, err)
		}
		err = circuit.ConstrainWordEqual(region, txTable.ValueCells(handle.TxSignHash), circuit.WordCells(result.MsgHash))
		if err != nil {
			return fmt.Errorf("binding sign hash of slot %d: %w", slot, err)
		}
	}
	return nil
}
