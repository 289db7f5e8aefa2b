package engine

import (
	"errors"
	"fmt"

	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/jong-un-1/mcp-cross-chain/state"
)

var (
	ErrUnauthorized             = errors.New("unauthorized")
	ErrGlobalStateFrozen        = errors.New("global state frozen")
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrOrderAlreadyExists       = errors.New("order already exists")
	ErrOrderNotFound            = errors.New("order not found")
	ErrInvalidOrderStatus       = errors.New("invalid order status")
	ErrMinAmountOutNotMet       = errors.New("min amount out not met")
	ErrFeeTierConfigInvalid     = errors.New("fee tier config invalid")
	ErrArithmeticOverflow       = errors.New("arithmetic overflow")
	ErrInsufficientVaultBalance = errors.New("insufficient vault balance")
	ErrTransferFailed           = errors.New("transfer failed")

	ErrNotFound           = errors.New("not found")
	ErrNotInitialized     = errors.New("global state not initialized")
	ErrAlreadyInitialized = errors.New("global state already initialized")
	// ErrOrderMismatch is returned when fill arguments differ from the stored order
	ErrOrderMismatch = fmt.Errorf("%w: order mismatch", ErrInvalidOrderStatus)
)

// translate maps errors of the fees and state packages onto the engine errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fees.ErrInvalidTiers):
		return fmt.Errorf("%w: %w", ErrFeeTierConfigInvalid, err)
	case errors.Is(err, fees.ErrOverflow),
		errors.Is(err, state.ErrOverflow),
		errors.Is(err, state.ErrMinAmountOutRange):
		return fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	case errors.Is(err, fees.ErrFeeTooLow),
		errors.Is(err, fees.ErrFeeTooHigh),
		errors.Is(err, fees.ErrZeroDenominator),
		errors.Is(err, fees.ErrFractionTooLarge),
		errors.Is(err, state.ErrInvalidMinAmountOut):
		return fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	case errors.Is(err, state.ErrInsufficientBalance):
		return fmt.Errorf("%w: %w", ErrInsufficientVaultBalance, err)
	default:
		return err
	}
}
