// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/txcircuit/signverify"
)

type Config struct {
	MaxTxs            int            `koanf:"max-txs"`
	MaxCalldata       int            `koanf:"max-calldata"`
	ChainID           uint64         `koanf:"chain-id"`
	RecoveryCacheSize int            `koanf:"recovery-cache-size"`
	Capacity          CapacityPolicy `koanf:"capacity"`

	SignVerify signverify.Calibration `koanf:"sign-verify"`
}

var ConfigDefault = Config{
	MaxTxs:            16,
	MaxCalldata:       4096,
	ChainID:           1337,
	RecoveryCacheSize: 1024,
	Capacity:          DefaultCapacityPolicy,
	SignVerify:        signverify.DefaultCalibration,
}

func ConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Int(prefix+".max-txs", ConfigDefault.MaxTxs, "number of transaction slots in the table")
	f.Int(prefix+".max-calldata", ConfigDefault.MaxCalldata, "number of calldata bytes the table can hold across all transactions")
	f.Uint64(prefix+".chain-id", ConfigDefault.ChainID, "chain id transactions are signed for")
	f.Int(prefix+".recovery-cache-size", ConfigDefault.RecoveryCacheSize, "number of recovered signers to cache (0 = disable)")
	CapacityPolicyAddOptions(prefix+".capacity", f)
	signverify.CalibrationAddOptions(prefix+".sign-verify", f)
}

func (c *Config) Validate() error {
	if c.MaxTxs <= 0 {
		return errors.New("max-txs must be positive")
	}
	if c.MaxCalldata < 0 {
		return errors.New("max-calldata must not be negative")
	}
	if c.RecoveryCacheSize < 0 {
		return errors.New("recovery-cache-size must not be negative")
	}
	return c.SignVerify.Validate()
}
