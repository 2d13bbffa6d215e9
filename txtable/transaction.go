// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/offchainlabs/txcircuit/circuit"
	"github.com/offchainlabs/txcircuit/signverify"
)

// Transaction is the normalized form of a signed EIP-155 legacy transaction
// as laid out in the table. Nil big values read as zero.
type Transaction struct {
	Nonce    uint64
	Gas      uint64
	GasPrice *uint256.Int
	From     common.Address
	// To is nil for contract creation.
	To       *common.Address
	Value    *uint256.Int
	CallData []byte

	V *big.Int
	R *big.Int
	S *big.Int
}

// zeroTransaction fills every slot without a real transaction, and its
// fields are the expected signature verification result for those slots.
var zeroTransaction = Transaction{}

// ZeroTransaction returns a copy of the canonical zero transaction.
func ZeroTransaction() *Transaction {
	tx := zeroTransaction
	return &tx
}

// PaddingSignData is the signature verification input for a slot holding
// the zero transaction.
func PaddingSignData() signverify.SignData {
	return signverify.SignData{
		Address: zeroTransaction.From,
		MsgHash: common.Hash{},
	}
}

// NewTransaction normalizes a signed geth transaction, recovering its sender
// with signer.
func NewTransaction(tx *types.Transaction, signer types.Signer) (*Transaction, error) {
	if tx.Type() != types.LegacyTxType {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTxType, tx.Type())
	}
	from, err := types.Sender(signer, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %v: %w", ErrSignatureDerivation, tx.Hash(), err)
	}
	gasPrice, overflow := uint256.FromBig(tx.GasPrice())
	if overflow {
		return nil, fmt.Errorf("tx %v: gas price overflows 256 bits", tx.Hash())
	}
	value, overflow := uint256.FromBig(tx.Value())
	if overflow {
		return nil, fmt.Errorf("tx %v: value overflows 256 bits", tx.Hash())
	}
	v, r, s := tx.RawSignatureValues()
	return &Transaction{
		Nonce:    tx.Nonce(),
		Gas:      tx.Gas(),
		GasPrice: gasPrice,
		From:     from,
		To:       tx.To(),
		Value:    value,
		CallData: common.CopyBytes(tx.Data()),
		V:        v,
		R:        r,
		S:        s,
	}, nil
}

func (tx *Transaction) IsCreate() bool {
	return tx.To == nil
}

func (tx *Transaction) ToOrZero() common.Address {
	if tx.To == nil {
		return common.Address{}
	}
	return *tx.To
}

// CallDataGasCost is the intrinsic gas charged for the calldata bytes.
func (tx *Transaction) CallDataGasCost() uint64 {
	var cost uint64
	for _, b := range tx.CallData {
		if b == 0 {
			cost += params.TxDataZeroGas
		} else {
			cost += params.TxDataNonZeroGasEIP2028
		}
	}
	return cost
}

func bigOrZero(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return x
}

func uint256ToBig(x *uint256.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return x.ToBig()
}

// Geth rebuilds the signed geth transaction.
func (tx *Transaction) Geth() *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    tx.Nonce,
		GasPrice: uint256ToBig(tx.GasPrice),
		Gas:      tx.Gas,
		To:       tx.To,
		Value:    uint256ToBig(tx.Value),
		Data:     tx.CallData,
		V:        bigOrZero(tx.V),
		R:        bigOrZero(tx.R),
		S:        bigOrZero(tx.S),
	})
}

// SignHash is the EIP-155 signing hash for chainID.
func (tx *Transaction) SignHash(chainID uint64) common.Hash {
	signer := types.NewEIP155Signer(new(big.Int).SetUint64(chainID))
	return signer.Hash(tx.Geth())
}

// SignData derives the signature verification input for tx. It fails when
// the signature is missing, was made for another chain, or does not recover.
func (tx *Transaction) SignData(chainID uint64, recoverer signverify.Recoverer) (signverify.SignData, error) {
	if tx.V == nil || tx.R == nil || tx.S == nil {
		return signverify.SignData{}, fmt.Errorf("%w: missing signature values", ErrSignatureDerivation)
	}
	if tx.R.Sign() < 0 || tx.S.Sign() < 0 || tx.R.BitLen() > 256 || tx.S.BitLen() > 256 {
		return signverify.SignData{}, fmt.Errorf("%w: signature values out of range", ErrSignatureDerivation)
	}
	// v = recid + chainID*2 + 35
	recID := new(big.Int).SetUint64(chainID)
	recID.Lsh(recID, 1)
	recID.Add(recID, big.NewInt(35))
	recID.Sub(tx.V, recID)
	if !recID.IsUint64() || recID.Uint64() > 1 {
		return signverify.SignData{}, fmt.Errorf("%w: v %v is not valid for chain %d", ErrSignatureDerivation, tx.V, chainID)
	}
	sig := make([]byte, crypto.SignatureLength)
	tx.R.FillBytes(sig[:32])
	tx.S.FillBytes(sig[32:64])
	sig[crypto.RecoveryIDOffset] = byte(recID.Uint64())

	data, err := recoverer.Recover(tx.SignHash(chainID), sig)
	if err != nil {
		return signverify.SignData{}, fmt.Errorf("%w: %w", ErrSignatureDerivation, err)
	}
	return data, nil
}

// fieldValue is the value of a static field other than TxSignHash, which is
// never derived from the transaction.
func (tx *Transaction) fieldValue(tag FieldTag) circuit.Word[fr.Element] {
	switch tag {
	case Nonce:
		return circuit.WordFromUint64(tx.Nonce)
	case Gas:
		return circuit.WordFromUint64(tx.Gas)
	case GasPrice:
		return circuit.WordFromUint256(tx.GasPrice)
	case CallerAddress:
		return circuit.WordFromAddress(tx.From)
	case CalleeAddress:
		return circuit.WordFromAddress(tx.ToOrZero())
	case IsCreate:
		if tx.IsCreate() {
			return circuit.WordFromUint64(1)
		}
		return circuit.WordFromUint64(0)
	case Value:
		return circuit.WordFromUint256(tx.Value)
	case CallDataLength:
		return circuit.WordFromUint64(uint64(len(tx.CallData)))
	case CallDataGasCost:
		return circuit.WordFromUint64(tx.CallDataGasCost())
	default:
		panic(fmt.Sprintf("no transaction value for tag %v", tag))
	}
}
