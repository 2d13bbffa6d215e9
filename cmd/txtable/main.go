// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/knadh/koanf"
	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/cmd/genericconf"
	"github.com/offchainlabs/txcircuit/cmd/util"
	"github.com/offchainlabs/txcircuit/compress"
	"github.com/offchainlabs/txcircuit/signverify"
	"github.com/offchainlabs/txcircuit/txtable"
)

type TxTableAppConfig struct {
	Conf        genericconf.ConfConfig        `koanf:"conf"`
	LogLevel    string                        `koanf:"log-level"`
	LogType     string                        `koanf:"log-type"`
	FileLogging genericconf.FileLoggingConfig `koanf:"file-logging"`
	TxTable     txtable.Config                `koanf:"tx-table"`
	Input       string                        `koanf:"input"`
	Output      string                        `koanf:"output"`
	Compress    bool                          `koanf:"compress"`
}

var TxTableAppConfigDefault = TxTableAppConfig{
	Conf:        genericconf.ConfConfigDefault,
	LogLevel:    "INFO",
	LogType:     "plaintext",
	FileLogging: genericconf.DefaultFileLoggingConfig,
	TxTable:     txtable.ConfigDefault,
	Input:       "",
	Output:      "",
	Compress:    false,
}

func TxTableAppConfigAddOptions(f *flag.FlagSet) {
	genericconf.ConfConfigAddOptions("conf", f)
	f.String("log-level", TxTableAppConfigDefault.LogLevel, "log level, valid values are CRIT, ERROR, WARN, INFO, DEBUG, TRACE")
	f.String("log-type", TxTableAppConfigDefault.LogType, "log type (plaintext or json)")
	genericconf.FileLoggingConfigAddOptions("file-logging", f)
	txtable.ConfigAddOptions("tx-table", f)
	f.String("input", TxTableAppConfigDefault.Input, "JSON file holding an array of hex encoded signed transactions")
	f.String("output", TxTableAppConfigDefault.Output, "file to write the assigned table to (empty = only report sizing)")
	f.Bool("compress", TxTableAppConfigDefault.Compress, "brotli compress the output file")
}

func ParseTxTableApp(args []string) (*TxTableAppConfig, error) {
	f := flag.NewFlagSet("txtable", flag.ContinueOnError)
	TxTableAppConfigAddOptions(f)

	k, err := util.BeginCommonParse(f, args)
	if err != nil {
		return nil, err
	}

	var config TxTableAppConfig
	if err := util.EndCommonParse(k, &config); err != nil {
		return nil, err
	}

	if config.Conf.Dump {
		if err := dumpConfig(k); err != nil {
			return nil, err
		}
		os.Exit(0)
	}
	if err := config.TxTable.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func dumpConfig(k *koanf.Koanf) error {
	// Don't keep printing configuration file
	err := k.Load(confmap.Provider(map[string]interface{}{
		"conf.dump": false,
	}, "."), nil)
	if err != nil {
		return errors.Wrap(err, "error removing extra parameters before dump")
	}

	c, err := k.Marshal(koanfjson.Parser())
	if err != nil {
		return errors.Wrap(err, "unable to marshal config file to JSON")
	}

	fmt.Println(string(c))
	return nil
}

func main() {
	// Replaced by InitLog once the configuration is parsed.
	if err := util.SetLogger("info", "plaintext"); err != nil {
		fmt.Fprintf(os.Stderr, "error setting up logger: %v\n", err)
		os.Exit(1)
	}
	if err := mainImpl(); err != nil {
		log.Error("txtable failed", "err", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	config, err := ParseTxTableApp(os.Args[1:])
	if err != nil {
		return err
	}
	if err := genericconf.InitLog(config.LogType, config.LogLevel, &config.FileLogging, genericconf.DefaultPathResolver("")); err != nil {
		return err
	}
	defer func() {
		if err := genericconf.CloseLog(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
		}
	}()

	txs, err := readTransactions(config.Input, config.TxTable.ChainID)
	if err != nil {
		return err
	}
	table, err := synthesize(&config.TxTable, txs)
	if err != nil {
		return err
	}
	if config.Output == "" {
		return nil
	}
	return writeTable(config.Output, table, config.Compress)
}

func readTransactions(path string, chainID uint64) ([]*txtable.Transaction, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raws []hexutil.Bytes
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("error parsing %v: %w", path, err)
	}
	return decodeTransactions(raws, chainID)
}

func decodeTransactions(raws []hexutil.Bytes, chainID uint64) ([]*txtable.Transaction, error) {
	signer := types.NewEIP155Signer(new(big.Int).SetUint64(chainID))
	txs := make([]*txtable.Transaction, 0, len(raws))
	for i, raw := range raws {
		var tx types.Transaction
		if err := tx.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
		converted, err := txtable.NewTransaction(&tx, signer)
		if err != nil {
			return nil, fmt.Errorf("tx %d (%v): %w", i, tx.Hash(), err)
		}
		txs = append(txs, converted)
	}
	return txs, nil
}

// synthesize lays out txs at the configured capacity and checks every
// copy constraint of the result.
func synthesize(config *txtable.Config, txs []*txtable.Transaction) (*txtable.Table, error) {
	cs := circuit.NewConstraintSystem()
	txTable := txtable.NewTxTable(cs)
	keccakTable := txtable.NewKeccakTable(cs)
	circuitConfig := txtable.NewCircuitConfig(cs, txtable.ConfigArgs{TxTable: txTable, KeccakTable: keccakTable})
	chip := signverify.NewChip(circuitConfig.SignVerify, config.MaxTxs)
	chip.Calibration = config.SignVerify

	txCircuit := txtable.NewTxCircuit(config.MaxTxs, config.MaxCalldata, config.ChainID, txs, chip)
	if config.RecoveryCacheSize > 0 {
		txCircuit.Recoverer = signverify.NewRecoveryCache(config.RecoveryCacheSize)
	}

	workloadRows, capacityRows := txCircuit.MinNumRows()
	degree := txCircuit.Degree()
	log.Info("tx circuit sizing",
		"txs", len(txs),
		"workloadRows", workloadRows,
		"capacityRows", capacityRows,
		"provingRows", config.Capacity.RequiredProvingRows(config.MaxTxs),
		"degree", degree,
	)

	assignment, err := circuit.NewAssignment(cs, degree, txtable.UnusableRows())
	if err != nil {
		return nil, err
	}
	table, err := txCircuit.Synthesize(circuitConfig, assignment)
	if err != nil {
		return nil, err
	}
	if err := assignment.Verify(); err != nil {
		return nil, fmt.Errorf("assignment does not satisfy copy constraints: %w", err)
	}
	log.Info("tx table assigned", "rows", table.Len(), "calldata", table.CalldataLen, "copies", len(assignment.Copies()))
	return table, nil
}

func writeTable(path string, table *txtable.Table, compressed bool) error {
	data, err := json.MarshalIndent(table.Export(), "", "  ")
	if err != nil {
		return err
	}
	if compressed {
		data, err = compress.CompressWell(data)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o600)
}
