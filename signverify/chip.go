// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package signverify

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/util/mathutil"
)

var ErrTooManySignatures = errors.New("more signatures than verification slots")

// rangeTableSize is the size of the byte range table loaded by LoadRange.
const rangeTableSize = 1 << 8

// AssignedSignatureVerify is the output of one verification slot. The cells
// are the provenance handles other components bind against.
type AssignedSignatureVerify struct {
	Address circuit.Word[circuit.AssignedCell]
	MsgHash circuit.Word[circuit.AssignedCell]
}

// Verifier is the signature verification component as seen by the
// transaction table.
type Verifier interface {
	// LoadRange loads the auxiliary lookup tables the verifier depends on.
	LoadRange(layouter circuit.Layouter) error
	// Assign lays out one verification per entry of signDatas and returns
	// the assigned outputs in the same order.
	Assign(layouter circuit.Layouter, signDatas []SignData) ([]AssignedSignatureVerify, error)
	// MinNumRows is the number of rows needed to verify numVerif signatures.
	MinNumRows(numVerif int) int
}

// Calibration holds row counts measured on the proving backend.
type Calibration struct {
	RangeTableRows    int `koanf:"range-table-rows"`
	EccAuxRows        int `koanf:"ecc-aux-rows"`
	EcdsaRows         int `koanf:"ecdsa-rows"`
	AddressVerifyRows int `koanf:"address-verify-rows"`
}

var DefaultCalibration = Calibration{
	RangeTableRows:    295188,
	EccAuxRows:        226,
	EcdsaRows:         104471,
	AddressVerifyRows: 76,
}

func CalibrationAddOptions(prefix string, f *flag.FlagSet) {
	f.Int(prefix+".range-table-rows", DefaultCalibration.RangeTableRows, "rows taken by the range lookup tables regardless of load")
	f.Int(prefix+".ecc-aux-rows", DefaultCalibration.EccAuxRows, "rows of elliptic curve auxiliary assignments per signature")
	f.Int(prefix+".ecdsa-rows", DefaultCalibration.EcdsaRows, "rows of ECDSA verification per signature")
	f.Int(prefix+".address-verify-rows", DefaultCalibration.AddressVerifyRows, "rows of public key to address checks per signature")
}

func (c *Calibration) Validate() error {
	if c.RangeTableRows < 0 || c.EccAuxRows < 0 || c.EcdsaRows < 0 || c.AddressVerifyRows < 0 {
		return errors.New("sign-verify calibration row counts must not be negative")
	}
	if c.RangeTableRows < rangeTableSize {
		return fmt.Errorf("sign-verify range-table-rows %d is below the %d rows of the range table", c.RangeTableRows, rangeTableSize)
	}
	return nil
}

func (c Calibration) MinNumRows(numVerif int) int {
	if numVerif < 0 {
		numVerif = 0
	}
	perVerif := mathutil.SaturatingUAdd(uint64(c.EccAuxRows), mathutil.SaturatingUAdd(uint64(c.EcdsaRows), uint64(c.AddressVerifyRows)))
	rows := mathutil.SaturatingUMul(perVerif, uint64(numVerif))
	return mathutil.SaturatingToInt(mathutil.MaxInt(uint64(c.RangeTableRows), rows))
}

// MinNumRows uses DefaultCalibration.
func MinNumRows(numVerif int) int {
	return DefaultCalibration.MinNumRows(numVerif)
}

type Config struct {
	QEnable     circuit.Column
	RangeU8     circuit.Column
	Address     circuit.Word[circuit.Column]
	MsgHash     circuit.Word[circuit.Column]
	KeccakTable circuit.LookupTable
}

func NewConfig(cs *circuit.ConstraintSystem, keccakTable circuit.LookupTable) Config {
	config := Config{
		QEnable: cs.FixedColumn("sign_verify.q_enable"),
		RangeU8: cs.FixedColumn("sign_verify.range_u8"),
		Address: circuit.NewWord(
			cs.AdviceColumn("sign_verify.address.lo"),
			cs.AdviceColumn("sign_verify.address.hi"),
		),
		MsgHash: circuit.NewWord(
			cs.AdviceColumn("sign_verify.msg_hash.lo"),
			cs.AdviceColumn("sign_verify.msg_hash.hi"),
		),
		KeccakTable: keccakTable,
	}
	for _, col := range []circuit.Column{config.Address.Lo, config.Address.Hi, config.MsgHash.Lo, config.MsgHash.Hi} {
		cs.EnableEquality(col)
	}
	return config
}

// Chip assigns recovered signer addresses and message hashes. The elliptic
// curve constraints tying them to the signature live in the proving backend.
type Chip struct {
	MaxVerif    int
	Calibration Calibration
	config      Config
}

var _ Verifier = (*Chip)(nil)

func NewChip(config Config, maxVerif int) *Chip {
	return &Chip{
		MaxVerif:    maxVerif,
		Calibration: DefaultCalibration,
		config:      config,
	}
}

func (c *Chip) Config() Config {
	return c.config
}

func (c *Chip) MinNumRows(numVerif int) int {
	return c.Calibration.MinNumRows(numVerif)
}

func (c *Chip) LoadRange(layouter circuit.Layouter) error {
	return layouter.AssignRegion("sign_verify range table", func(region circuit.Region) error {
		for i := 0; i < rangeTableSize; i++ {
			if _, err := region.AssignFixed("range_u8", c.config.RangeU8, i, fr.NewElement(uint64(i))); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *Chip) Assign(layouter circuit.Layouter, signDatas []SignData) ([]AssignedSignatureVerify, error) {
	if len(signDatas) > c.MaxVerif {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySignatures, len(signDatas), c.MaxVerif)
	}
	for i := range signDatas {
		if err := checkSignData(&signDatas[i]); err != nil {
			return nil, fmt.Errorf("signature %d: %w", i, err)
		}
	}
	assigned := make([]AssignedSignatureVerify, 0, len(signDatas))
	err := layouter.AssignRegion("signature address verify", func(region circuit.Region) error {
		for i := range signDatas {
			data := &signDatas[i]
			if _, err := region.AssignFixed("q_enable", c.config.QEnable, i, fr.One()); err != nil {
				return err
			}
			address, err := circuit.AssignWord(region, "address", c.config.Address, i, circuit.WordFromAddress(data.Address))
			if err != nil {
				return err
			}
			msgHash, err := circuit.AssignWord(region, "msg_hash", c.config.MsgHash, i, circuit.WordFromHash(data.MsgHash))
			if err != nil {
				return err
			}
			assigned = append(assigned, AssignedSignatureVerify{Address: address, MsgHash: msgHash})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("assigned signature verifications", "count", len(assigned), "max", c.MaxVerif)
	return assigned, nil
}

func checkSignData(data *SignData) error {
	if data.IsPadding() {
		return nil
	}
	if len(data.Signature) != crypto.SignatureLength {
		return fmt.Errorf("%w: length %d", ErrInvalidSignature, len(data.Signature))
	}
	if !crypto.VerifySignature(crypto.FromECDSAPub(data.PubKey), data.MsgHash[:], data.Signature[:crypto.RecoveryIDOffset]) {
		return fmt.Errorf("%w: does not verify against public key", ErrInvalidSignature)
	}
	if crypto.PubkeyToAddress(*data.PubKey) != data.Address {
		return fmt.Errorf("%w: address %v does not match public key", ErrInvalidSignature, data.Address)
	}
	return nil
}
