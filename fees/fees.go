package fees

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

var (
	ErrZeroDenominator  = errors.New("protocol fee denominator is zero")
	ErrFractionTooLarge = errors.New("protocol fee fraction above one")
	ErrFeeTooLow        = errors.New("fee below required fee")
	ErrFeeTooHigh       = errors.New("fee not below order amount")
)

// Fraction is the share of the bps fee that is kept as protocol revenue.
type Fraction struct {
	Numerator   uint64 `json:"numerator" mapstructure:"numerator"`
	Denominator uint64 `json:"denominator" mapstructure:"denominator" default:"1"`
}

func (f Fraction) Validate() error {
	if f.Denominator == 0 {
		return ErrZeroDenominator
	}
	if f.Numerator > f.Denominator {
		return fmt.Errorf("%w: %d/%d", ErrFractionTooLarge, f.Numerator, f.Denominator)
	}
	return nil
}

// Apply returns fee * numerator / denominator rounded down. The product has
// to fit into 64 bits.
func (f Fraction) Apply(fee uint64) (uint64, error) {
	if f.Denominator == 0 {
		return 0, ErrZeroDenominator
	}

	product, overflow := new(uint256.Int).MulOverflow(
		uint256.NewInt(fee),
		uint256.NewInt(f.Numerator))
	if overflow || !product.IsUint64() {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, fee, f.Numerator)
	}

	return product.Uint64() / f.Denominator, nil
}

// BpsOf calculates amount * bps / BPS_DENOMINATOR rounded down.
func BpsOf(amount uint64, bps uint64) (uint64, error) {
	product, overflow := new(uint256.Int).MulOverflow(
		uint256.NewInt(amount),
		uint256.NewInt(bps))
	if overflow {
		return 0, fmt.Errorf("%w: %d * %d bps", ErrOverflow, amount, bps)
	}

	result := product.Div(product, uint256.NewInt(BPS_DENOMINATOR))
	if !result.IsUint64() {
		return 0, fmt.Errorf("%w: %d * %d bps", ErrOverflow, amount, bps)
	}
	return result.Uint64(), nil
}

// Breakdown splits an order fee into the parts that are credited to the
// separate vault pools.
type Breakdown struct {
	Base      uint64 `json:"base"`
	Insurance uint64 `json:"insurance"`
	Protocol  uint64 `json:"protocol"`
	LP        uint64 `json:"lp"`
	Total     uint64 `json:"total"`
}

// Schedule holds everything needed to derive the fee of an order.
type Schedule struct {
	FeeTiers          TierTable
	InsuranceFeeTiers TierTable
	// CrossChainFeeBps is charged when no fee tiers are configured
	CrossChainFeeBps uint64
	ProtocolFee      Fraction
}

// Required calculates the minimal fee an order of amount has to pay, given the
// destination chain base fee.
func (s Schedule) Required(amount uint64, baseFee uint64) (Breakdown, error) {
	bps, ok := s.FeeTiers.Lookup(amount)
	if !ok {
		bps = s.CrossChainFeeBps
	}
	bpsFee, err := BpsOf(amount, bps)
	if err != nil {
		return Breakdown{}, err
	}

	insurance := uint64(0)
	insuranceBps, ok := s.InsuranceFeeTiers.Lookup(amount)
	if ok {
		insurance, err = BpsOf(amount, insuranceBps)
		if err != nil {
			return Breakdown{}, err
		}
	}

	total, err := add(baseFee, bpsFee, insurance)
	if err != nil {
		return Breakdown{}, err
	}

	return s.split(baseFee, insurance, total)
}

// Split validates the fee paid for an order of amount against the required
// fee and divides it between the pools. Anything paid above the required fee
// is treated as part of the bps fee.
func (s Schedule) Split(amount uint64, baseFee uint64, fee uint64) (Breakdown, error) {
	required, err := s.Required(amount, baseFee)
	if err != nil {
		return Breakdown{}, err
	}

	if fee < required.Total {
		return Breakdown{}, fmt.Errorf("%w: paid %d, required %d", ErrFeeTooLow, fee, required.Total)
	}
	if fee >= amount {
		return Breakdown{}, fmt.Errorf("%w: fee %d, amount %d", ErrFeeTooHigh, fee, amount)
	}

	return s.split(required.Base, required.Insurance, fee)
}

func (s Schedule) split(base uint64, insurance uint64, total uint64) (Breakdown, error) {
	bpsFee := total - base - insurance
	protocol, err := s.ProtocolFee.Apply(bpsFee)
	if err != nil {
		return Breakdown{}, err
	}

	return Breakdown{
		Base:      base,
		Insurance: insurance,
		Protocol:  protocol,
		LP:        bpsFee - protocol,
		Total:     total,
	}, nil
}

func add(values ...uint64) (uint64, error) {
	sum := new(uint256.Int)
	for _, v := range values {
		sum.Add(sum, uint256.NewInt(v))
	}
	if !sum.IsUint64() {
		return 0, fmt.Errorf("%w: fee sum", ErrOverflow)
	}
	return sum.Uint64(), nil
}
