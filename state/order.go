package state

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/shopspring/decimal"
)

const (
	ORDER_SEED = "settlement-order"
	VAULT_SEED = "settlement-vault"

	// MAX_MIN_AMOUNT_OUT_DIGITS fits any 256 bit amount
	MAX_MIN_AMOUNT_OUT_DIGITS = 78
)

var (
	ErrInvalidMinAmountOut = errors.New("invalid min amount out")
	ErrMinAmountOutRange   = errors.New("min amount out does not fit into 64 bits")
)

var minAmountOutPattern = regexp.MustCompile(fmt.Sprintf(`^[0-9]{1,%d}$`, MAX_MIN_AMOUNT_OUT_DIGITS))

// VaultAccount is the account holding deposits, bridge liquidity and fees.
var VaultAccount = crypto.Keccak256Hash([]byte(VAULT_SEED))

type OrderStatus uint8

const (
	OrderCreated OrderStatus = iota + 1
	OrderFilled
	OrderReverted
)

func (s OrderStatus) String() string {
	switch s {
	case OrderCreated:
		return "created"
	case OrderFilled:
		return "filled"
	case OrderReverted:
		return "reverted"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *OrderStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "created":
		*s = OrderCreated
	case "filled":
		*s = OrderFilled
	case "reverted":
		*s = OrderReverted
	default:
		return fmt.Errorf("unknown order status %s", string(text))
	}
	return nil
}

// FillSnapshot is recorded by the first fill phase and consumed by the second.
type FillSnapshot struct {
	Orchestrator common.Hash `json:"orchestrator"`
	// PrevBalance is the orchestrator token out balance after the vault
	// released the routed amount
	PrevBalance uint64 `json:"prevBalance"`
	Released    uint64 `json:"released"`
	// Fees is the breakdown credited to the vault pools when the fill started
	Fees fees.Breakdown `json:"fees"`
}

type Order struct {
	OrderHash    common.Hash `json:"orderHash"`
	Seed         common.Hash `json:"seed"`
	Trader       common.Hash `json:"trader"`
	Receiver     common.Hash `json:"receiver"`
	SrcChainID   uint32      `json:"srcChainId"`
	DestChainID  uint32      `json:"destChainId"`
	TokenIn      common.Hash `json:"tokenIn"`
	TokenOut     common.Hash `json:"tokenOut"`
	Amount       uint64      `json:"amount"`
	Fee          uint64      `json:"fee"`
	MinAmountOut string      `json:"minAmountOut"`
	Status       OrderStatus `json:"status"`

	Fill Pending[FillSnapshot] `json:"fill"`
}

// Address is the storage address of the order.
func (o *Order) Address() common.Hash {
	return OrderAddress(o.Trader, o.Seed)
}

// OrderAddress derives the storage address of an order from the trader and
// the order seed, so the same trader can not create two orders with one seed.
func OrderAddress(trader common.Hash, seed common.Hash) common.Hash {
	return crypto.Keccak256Hash([]byte(ORDER_SEED), trader.Bytes(), seed.Bytes())
}

// ParseMinAmountOut parses the min amount out into a local amount. Only plain
// decimal digits are accepted.
func ParseMinAmountOut(value string) (uint64, error) {
	if !minAmountOutPattern.MatchString(value) {
		return 0, fmt.Errorf("%w: %q is not a plain integer of at most %d digits", ErrInvalidMinAmountOut, value, MAX_MIN_AMOUNT_OUT_DIGITS)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMinAmountOut, err)
	}

	amount := d.BigInt()
	if !amount.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrMinAmountOutRange, value)
	}
	return amount.Uint64(), nil
}
