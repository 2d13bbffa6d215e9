// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"fmt"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/signverify"
)

// BuildTable lays out txs in a table with room for maxTxs transactions and
// maxCalldata calldata bytes. Slots past len(txs) hold the zero transaction.
// The TxSignHash of every slot is read from signResults, which must cover
// all maxTxs slots. Nothing is returned unless the whole table is built.
func BuildTable(txs []*Transaction, maxTxs, maxCalldata int, chainID uint64, signResults []signverify.AssignedSignatureVerify) (*Table, error) {
	if maxTxs <= 0 || maxCalldata < 0 {
		return nil, fmt.Errorf("%w: max txs %d, max calldata %d", ErrInvalidCapacity, maxTxs, maxCalldata)
	}
	if len(txs) > maxTxs {
		return nil, fmt.Errorf("%w: %d > %d", ErrInputTooLarge, len(txs), maxTxs)
	}
	if len(signResults) < maxTxs {
		return nil, fmt.Errorf("%w: %d < %d", ErrBindingRange, len(signResults), maxTxs)
	}
	if err := checkTransactions(txs); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, TableLen(maxTxs, maxCalldata))
	handles := make([]SlotHandle, 0, maxTxs)

	rows = append(rows, Row{TxID: 0, Tag: Null, Index: 0, Value: circuit.ZeroWord()})

	zero := ZeroTransaction()
	for i := 0; i < maxTxs; i++ {
		tx := zero
		if i < len(txs) {
			tx = txs[i]
		}
		txID := uint64(i + 1)
		for _, tag := range staticFieldTags {
			row := Row{TxID: txID, Tag: tag}
			if tag == TxSignHash {
				row.Value = circuit.WordValues(signResults[i].MsgHash)
			} else {
				row.Value = tx.fieldValue(tag)
			}
			rows = append(rows, row)
		}
		handles = append(handles, SlotHandle{
			CallerAddress: StaticRowOffset(i, CallerAddress),
			TxSignHash:    StaticRowOffset(i, TxSignHash),
		})
	}

	calldataCount := 0
	for i, tx := range txs {
		for index, b := range tx.CallData {
			if calldataCount >= maxCalldata {
				return nil, fmt.Errorf("%w: tx %d byte %d, capacity %d", ErrCalldataOverflow, i, index, maxCalldata)
			}
			rows = append(rows, Row{
				TxID:  uint64(i + 1),
				Tag:   CallData,
				Index: uint64(index),
				Value: circuit.WordFromUint64(uint64(b)),
			})
			calldataCount++
		}
	}
	for k := calldataCount; k < maxCalldata; k++ {
		rows = append(rows, Row{TxID: 0, Tag: CallData, Index: 0, Value: circuit.ZeroWord()})
	}

	return &Table{
		MaxTxs:      maxTxs,
		MaxCalldata: maxCalldata,
		ChainID:     chainID,
		Rows:        rows,
		Handles:     handles,
		CalldataLen: calldataCount,
	}, nil
}

func checkTransactions(txs []*Transaction) error {
	for i, tx := range txs {
		if tx == nil {
			return fmt.Errorf("%w: tx %d", ErrNilTransaction, i)
		}
	}
	return nil
}
