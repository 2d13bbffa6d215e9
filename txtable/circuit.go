// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/signverify"
	"github.com/offchainlabs/txcircuit/util/mathutil"
)

var (
	synthesizeCounter       = metrics.NewRegisteredCounter("txtable/synthesize/count", nil)
	synthesizeFailedCounter = metrics.NewRegisteredCounter("txtable/synthesize/failed", nil)
	calldataRowsGauge       = metrics.NewRegisteredGauge("txtable/calldata/rows", nil)
	slotsUsedGauge          = metrics.NewRegisteredGauge("txtable/slots/used", nil)
)

// Block is the input of one proof instance.
type Block struct {
	Txs         []*Transaction
	ChainID     uint64
	MaxTxs      int
	MaxCalldata int
}

// ConfigArgs are the tables shared with sibling components.
type ConfigArgs struct {
	TxTable     *TxTable
	KeccakTable circuit.LookupTable
}

type CircuitConfig struct {
	TxTable    *TxTable
	SignVerify signverify.Config
	// Instance is never assigned, see TxCircuit.Instance.
	Instance circuit.Column
}

// NewCircuitConfig enables equality on the value columns of the table, which
// is where the signature outputs are bound.
func NewCircuitConfig(cs *circuit.ConstraintSystem, args ConfigArgs) *CircuitConfig {
	cs.EnableEquality(args.TxTable.Value.Lo)
	cs.EnableEquality(args.TxTable.Value.Hi)
	return &CircuitConfig{
		TxTable:    args.TxTable,
		SignVerify: signverify.NewConfig(cs, args.KeccakTable),
		Instance:   cs.InstanceColumn("tx.instance"),
	}
}

// TxCircuit checks the signatures of a batch of transactions and lays the
// transactions out in the transaction table.
type TxCircuit struct {
	MaxTxs      int
	MaxCalldata int
	ChainID     uint64
	Txs         []*Transaction
	SignVerify  signverify.Verifier
	Recoverer   signverify.Recoverer
}

func NewTxCircuit(maxTxs, maxCalldata int, chainID uint64, txs []*Transaction, signVerify signverify.Verifier) *TxCircuit {
	return &TxCircuit{
		MaxTxs:      maxTxs,
		MaxCalldata: maxCalldata,
		ChainID:     chainID,
		Txs:         txs,
		SignVerify:  signVerify,
		Recoverer:   signverify.DirectRecoverer{},
	}
}

func NewTxCircuitFromBlock(block *Block, signVerify signverify.Verifier) *TxCircuit {
	return NewTxCircuit(block.MaxTxs, block.MaxCalldata, block.ChainID, block.Txs, signVerify)
}

// MinNumRows returns the rows needed for the circuit's transactions and for
// its configured capacity.
func (c *TxCircuit) MinNumRows() (int, int) {
	return MinNumRowsBlock(&Block{Txs: c.Txs, ChainID: c.ChainID, MaxTxs: c.MaxTxs, MaxCalldata: c.MaxCalldata}, c.SignVerify)
}

// Degree is the circuit size needed at full capacity, large enough for both
// signature verification and the whole table.
func (c *TxCircuit) Degree() uint {
	_, capacityRows := c.MinNumRows()
	return Degree(mathutil.MaxInt(capacityRows, TableLen(c.MaxTxs, c.MaxCalldata)))
}

// Instance is a single empty instance column.
func (c *TxCircuit) Instance() [][]fr.Element {
	return [][]fr.Element{{}}
}

// SignDatas derives the signature verification input of every transaction.
func (c *TxCircuit) SignDatas() ([]signverify.SignData, error) {
	recoverer := c.Recoverer
	if recoverer == nil {
		recoverer = signverify.DirectRecoverer{}
	}
	signDatas := make([]signverify.SignData, 0, len(c.Txs))
	if err := checkTransactions(c.Txs); err != nil {
		return nil, err
	}
	for i, tx := range c.Txs {
		data, err := tx.SignData(c.ChainID, recoverer)
		if err != nil {
			log.Error("failed to derive sign data", "tx", i, "chainId", c.ChainID, "err", err)
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
		signDatas = append(signDatas, data)
	}
	return signDatas, nil
}

// Synthesize assigns signature verification for every slot, builds the
// table, assigns it, and binds the two together. It returns the table that
// was assigned.
func (c *TxCircuit) Synthesize(config *CircuitConfig, layouter circuit.Layouter) (*Table, error) {
	synthesizeCounter.Inc(1)
	table, err := c.synthesize(config, layouter)
	if err != nil {
		synthesizeFailedCounter.Inc(1)
		return nil, err
	}
	calldataRowsGauge.Update(int64(table.CalldataLen))
	slotsUsedGauge.Update(int64(len(c.Txs)))
	log.Debug("synthesized tx circuit", "txs", len(c.Txs), "maxTxs", c.MaxTxs, "calldata", table.CalldataLen, "maxCalldata", c.MaxCalldata, "rows", table.Len())
	return table, nil
}

func (c *TxCircuit) synthesize(config *CircuitConfig, layouter circuit.Layouter) (*Table, error) {
	if len(c.Txs) > c.MaxTxs {
		return nil, fmt.Errorf("%w: %d > %d", ErrInputTooLarge, len(c.Txs), c.MaxTxs)
	}
	signDatas, err := c.SignDatas()
	if err != nil {
		return nil, err
	}
	padding := PaddingSignData()
	for len(signDatas) < c.MaxTxs {
		signDatas = append(signDatas, padding)
	}

	if err := c.SignVerify.LoadRange(layouter); err != nil {
		return nil, err
	}
	signResults, err := c.SignVerify.Assign(layouter, signDatas)
	if err != nil {
		return nil, err
	}

	table, err := BuildTable(c.Txs, c.MaxTxs, c.MaxCalldata, c.ChainID, signResults)
	if err != nil {
		return nil, err
	}
	err = layouter.AssignRegion("tx table", func(region circuit.Region) error {
		if err := config.TxTable.Assign(region, table); err != nil {
			return err
		}
		return BindSignatures(region, config.TxTable, table, signResults)
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}
