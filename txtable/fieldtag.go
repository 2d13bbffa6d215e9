// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package txtable

import "fmt"

// FieldTag identifies which transaction field a table row holds. The numeric
// values are assigned to the fixed tag column and must not change.
type FieldTag uint8

const (
	Null FieldTag = iota
	Nonce
	Gas
	GasPrice
	CallerAddress
	CalleeAddress
	IsCreate
	Value
	CallDataLength
	CallDataGasCost
	TxSignHash
	CallData
)

// TxLen is the number of static rows per transaction slot.
const TxLen = 10

// staticFieldTags is the order of the static rows within a slot.
var staticFieldTags = [TxLen]FieldTag{
	Nonce,
	Gas,
	GasPrice,
	CallerAddress,
	CalleeAddress,
	IsCreate,
	Value,
	CallDataLength,
	CallDataGasCost,
	TxSignHash,
}

// StaticFieldTags returns the static tags in row order.
func StaticFieldTags() [TxLen]FieldTag {
	return staticFieldTags
}

func (t FieldTag) IsStatic() bool {
	return t >= Nonce && t <= TxSignHash
}

func (t FieldTag) String() string {
	switch t {
	case Null:
		return "Null"
	case Nonce:
		return "Nonce"
	case Gas:
		return "Gas"
	case GasPrice:
		return "GasPrice"
	case CallerAddress:
		return "CallerAddress"
	case CalleeAddress:
		return "CalleeAddress"
	case IsCreate:
		return "IsCreate"
	case Value:
		return "Value"
	case CallDataLength:
		return "CallDataLength"
	case CallDataGasCost:
		return "CallDataGasCost"
	case TxSignHash:
		return "TxSignHash"
	case CallData:
		return "CallData"
	default:
		return fmt.Sprintf("FieldTag(%d)", uint8(t))
	}
}
