package state

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/fees"
)

var (
	ErrInsufficientBalance = errors.New("insufficient vault balance")
	ErrOverflow            = errors.New("vault accumulator overflow")
	ErrUnknownFeeType      = errors.New("unknown fee type")
)

type FeeType uint8

const (
	FeeTypeBase FeeType = iota
	FeeTypeLP
	FeeTypeProtocol
)

func (t FeeType) String() string {
	switch t {
	case FeeTypeBase:
		return "base"
	case FeeTypeLP:
		return "lp"
	case FeeTypeProtocol:
		return "protocol"
	default:
		return fmt.Sprintf("feetype(%d)", uint8(t))
	}
}

// Permission is the orchestrator permission needed to claim the fee type.
func (t FeeType) Permission() Permission {
	switch t {
	case FeeTypeLP:
		return PermissionClaimLPFee
	case FeeTypeProtocol:
		return PermissionClaimProtocolFee
	default:
		return PermissionClaimBaseFee
	}
}

func ParseFeeType(value string) (FeeType, error) {
	switch strings.ToLower(value) {
	case "base":
		return FeeTypeBase, nil
	case "lp":
		return FeeTypeLP, nil
	case "protocol":
		return FeeTypeProtocol, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFeeType, value)
	}
}

func (t FeeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *FeeType) UnmarshalText(text []byte) error {
	feeType, err := ParseFeeType(string(text))
	if err != nil {
		return err
	}
	*t = feeType
	return nil
}

// Vault holds the per token accumulators of the settlement vault. The token
// balance of VaultAccount always covers Liquidity, Escrowed and the
// unclaimed fee pools.
type Vault struct {
	Token common.Hash `json:"token"`

	Liquidity uint64 `json:"liquidity"`
	// Escrowed is the sum of deposits of orders that were neither filled nor reverted
	Escrowed uint64 `json:"escrowed"`

	UnclaimedBaseFee     uint64 `json:"unclaimedBaseFee"`
	UnclaimedLPFee       uint64 `json:"unclaimedLpFee"`
	UnclaimedProtocolFee uint64 `json:"unclaimedProtocolFee"`

	TotalFeeCollected     uint64 `json:"totalFeeCollected"`
	BaseFeeCollected      uint64 `json:"baseFeeCollected"`
	LPFeeCollected        uint64 `json:"lpFeeCollected"`
	ProtocolFeeCollected  uint64 `json:"protocolFeeCollected"`
	InsuranceFeeCollected uint64 `json:"insuranceFeeCollected"`
}

func NewVault(token common.Hash) *Vault {
	return &Vault{Token: token}
}

func (v *Vault) Unclaimed(feeType FeeType) uint64 {
	switch feeType {
	case FeeTypeBase:
		return v.UnclaimedBaseFee
	case FeeTypeLP:
		return v.UnclaimedLPFee
	case FeeTypeProtocol:
		return v.UnclaimedProtocolFee
	default:
		return 0
	}
}

// Claim decrements the unclaimed pool of the fee type by amount.
func (v *Vault) Claim(feeType FeeType, amount uint64) error {
	pool := v.Unclaimed(feeType)
	if amount > pool {
		return fmt.Errorf("%w: claimed %d, %s pool holds %d", ErrInsufficientBalance, amount, feeType, pool)
	}

	switch feeType {
	case FeeTypeBase:
		v.UnclaimedBaseFee -= amount
	case FeeTypeLP:
		v.UnclaimedLPFee -= amount
	case FeeTypeProtocol:
		v.UnclaimedProtocolFee -= amount
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFeeType, feeType)
	}
	return nil
}

// CollectFees credits the fee breakdown of a filled order. The insurance
// share is kept as bridge liquidity.
func (v *Vault) CollectFees(breakdown fees.Breakdown) error {
	next := *v
	for _, step := range []struct {
		value  *uint64
		amount uint64
	}{
		{&next.UnclaimedBaseFee, breakdown.Base},
		{&next.UnclaimedLPFee, breakdown.LP},
		{&next.UnclaimedProtocolFee, breakdown.Protocol},
		{&next.Liquidity, breakdown.Insurance},
		{&next.TotalFeeCollected, breakdown.Total},
		{&next.BaseFeeCollected, breakdown.Base},
		{&next.LPFeeCollected, breakdown.LP},
		{&next.ProtocolFeeCollected, breakdown.Protocol},
		{&next.InsuranceFeeCollected, breakdown.Insurance},
	} {
		sum, err := checkedAdd(*step.value, step.amount)
		if err != nil {
			return err
		}
		*step.value = sum
	}

	*v = next
	return nil
}

func (v *Vault) Escrow(amount uint64) error {
	escrowed, err := checkedAdd(v.Escrowed, amount)
	if err != nil {
		return err
	}
	v.Escrowed = escrowed
	return nil
}

func (v *Vault) Release(amount uint64) error {
	if amount > v.Escrowed {
		return fmt.Errorf("%w: released %d, escrowed %d", ErrInsufficientBalance, amount, v.Escrowed)
	}
	v.Escrowed -= amount
	return nil
}

func (v *Vault) AddLiquidity(amount uint64) error {
	liquidity, err := checkedAdd(v.Liquidity, amount)
	if err != nil {
		return err
	}
	v.Liquidity = liquidity
	return nil
}

func (v *Vault) RemoveLiquidity(amount uint64) error {
	if amount > v.Liquidity {
		return fmt.Errorf("%w: removing %d, liquidity %d", ErrInsufficientBalance, amount, v.Liquidity)
	}
	v.Liquidity -= amount
	return nil
}

// RefundFees reverses a fee breakdown credited by CollectFees.
func (v *Vault) RefundFees(breakdown fees.Breakdown) error {
	next := *v
	for _, step := range []struct {
		name   string
		value  *uint64
		amount uint64
	}{
		{"base fee pool", &next.UnclaimedBaseFee, breakdown.Base},
		{"lp fee pool", &next.UnclaimedLPFee, breakdown.LP},
		{"protocol fee pool", &next.UnclaimedProtocolFee, breakdown.Protocol},
		{"liquidity", &next.Liquidity, breakdown.Insurance},
		{"total fee collected", &next.TotalFeeCollected, breakdown.Total},
		{"base fee collected", &next.BaseFeeCollected, breakdown.Base},
		{"lp fee collected", &next.LPFeeCollected, breakdown.LP},
		{"protocol fee collected", &next.ProtocolFeeCollected, breakdown.Protocol},
		{"insurance fee collected", &next.InsuranceFeeCollected, breakdown.Insurance},
	} {
		if step.amount > *step.value {
			return fmt.Errorf("%w: refunding %d, %s holds %d", ErrInsufficientBalance, step.amount, step.name, *step.value)
		}
		*step.value -= step.amount
	}

	*v = next
	return nil
}

func checkedAdd(a uint64, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return sum, nil
}
