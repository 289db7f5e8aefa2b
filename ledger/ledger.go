// Package ledger keeps token balances in the settlement store, so transfers
// commit in the same batch as the state change that caused them.
package ledger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/rs/zerolog/log"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOverflow          = errors.New("balance overflow")
	ErrZeroAmount        = errors.New("zero amount")
)

var BalancePrefix = []byte("ledger/")

type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Transfer moves amount of token between accounts. Moving funds to the same
// account only checks that the account holds them.
func (l *Ledger) Transfer(
	ctx context.Context,
	rw store.ReadWriter,
	token common.Hash,
	from common.Hash,
	to common.Hash,
	amount uint64,
) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	fromBalance, err := l.BalanceOf(ctx, rw, token, from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: %s holds %d of %s, transferring %d", ErrInsufficientFunds, from.Hex(), fromBalance, token.Hex(), amount)
	}
	if from == to {
		return nil
	}

	toBalance, err := l.BalanceOf(ctx, rw, token, to)
	if err != nil {
		return err
	}
	toBalance, carry := bits.Add64(toBalance, amount, 0)
	if carry != 0 {
		return fmt.Errorf("%w: %s", ErrOverflow, to.Hex())
	}

	err = put(rw, token, from, fromBalance-amount)
	if err != nil {
		return err
	}
	err = put(rw, token, to, toBalance)
	if err != nil {
		return err
	}

	log.Trace().Msgf("Transferred %d of %s from %s to %s", amount, token.Hex(), from.Hex(), to.Hex())
	return nil
}

func (l *Ledger) BalanceOf(ctx context.Context, r store.Reader, token common.Hash, account common.Hash) (uint64, error) {
	value, err := r.Get(BalanceKey(token, account))
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(value) != 8 {
		return 0, fmt.Errorf("malformed balance of %s", account.Hex())
	}
	return binary.BigEndian.Uint64(value), nil
}

// Credit mints amount of token to the account. It backs genesis balances
// and the faucet endpoint.
func (l *Ledger) Credit(ctx context.Context, rw store.ReadWriter, token common.Hash, account common.Hash, amount uint64) error {
	balance, err := l.BalanceOf(ctx, rw, token, account)
	if err != nil {
		return err
	}
	balance, carry := bits.Add64(balance, amount, 0)
	if carry != 0 {
		return fmt.Errorf("%w: %s", ErrOverflow, account.Hex())
	}
	return put(rw, token, account, balance)
}

func BalanceKey(token common.Hash, account common.Hash) []byte {
	key := append([]byte{}, BalancePrefix...)
	key = append(key, token.Bytes()...)
	return append(key, account.Bytes()...)
}

func put(w store.Writer, token common.Hash, account common.Hash, balance uint64) error {
	return w.Put(BalanceKey(token, account), binary.BigEndian.AppendUint64(nil, balance))
}
