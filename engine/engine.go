// Package engine is the settlement core. Every exported operation runs as one
// atomic unit of work: reads, writes and token transfers go through a single
// store transaction that is committed only when the operation succeeds.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/rs/zerolog/log"
)

// Transferer moves token balances. Transfers are executed inside the engine
// transaction and are discarded together with it.
type Transferer interface {
	Transfer(ctx context.Context, rw store.ReadWriter, token common.Hash, from common.Hash, to common.Hash, amount uint64) error
	BalanceOf(ctx context.Context, r store.Reader, token common.Hash, account common.Hash) (uint64, error)
}

type Metrics interface {
	TrackOrderCreated(amount uint64)
	TrackOrderReverted(amount uint64)
	StartFill(orderHash string)
	EndFill(orderHash string)
	AbortFill(orderHash string)
	TrackFeesClaimed(feeType string, amount uint64)
	TrackLiquidityRemoved(amount uint64)
}

type Database interface {
	store.Reader
	Begin() *store.Tx
	Iterate(prefix []byte, fn func(key []byte, value []byte) bool) error
}

type Engine struct {
	// lock makes the engine the single writer of the settlement state
	lock sync.RWMutex

	db         Database
	transferer Transferer
	metrics    Metrics
}

func NewEngine(db Database, transferer Transferer, metrics Metrics) *Engine {
	return &Engine{
		db:         db,
		transferer: transferer,
		metrics:    metrics,
	}
}

// update runs fn against the initialized global state inside a transaction.
// The transaction is committed only if fn succeeds.
func (e *Engine) update(operation string, fn func(tx *store.Tx, g *state.GlobalState) error) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	tx := e.db.Begin()
	defer tx.Discard()

	g, err := state.GetGlobalState(tx)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotInitialized
	}
	if err != nil {
		return err
	}

	err = fn(tx, g)
	if err != nil {
		log.Debug().Err(err).Str("operation", operation).Msg("Operation rejected")
		return err
	}

	return tx.Commit()
}

// view runs fn against the committed state.
func (e *Engine) view(fn func(r store.Reader, g *state.GlobalState) error) error {
	e.lock.RLock()
	defer e.lock.RUnlock()

	g, err := state.GetGlobalState(e.db)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotInitialized
	}
	if err != nil {
		return err
	}

	return fn(e.db, g)
}

func (e *Engine) transfer(
	ctx context.Context,
	rw store.ReadWriter,
	token common.Hash,
	from common.Hash,
	to common.Hash,
	amount uint64,
) error {
	err := e.transferer.Transfer(ctx, rw, token, from, to, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	return nil
}

func (e *Engine) balanceOf(ctx context.Context, r store.Reader, token common.Hash, account common.Hash) (uint64, error) {
	balance, err := e.transferer.BalanceOf(ctx, r, token, account)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	return balance, nil
}

func requireAdmin(g *state.GlobalState, caller common.Hash) error {
	if !g.IsAdmin(caller) {
		return fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller.Hex())
	}
	return nil
}

func requireNotFrozen(g *state.GlobalState) error {
	if g.Frozen {
		return ErrGlobalStateFrozen
	}
	return nil
}

// requireOrchestrator returns the orchestrator record of the caller if it is
// active and holds the permission.
func requireOrchestrator(r store.Reader, caller common.Hash, permission state.Permission) (*state.Orchestrator, error) {
	o, err := state.GetOrchestrator(r, caller)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s is not an orchestrator", ErrUnauthorized, caller.Hex())
	}
	if err != nil {
		return nil, err
	}

	if !o.Can(permission) {
		return nil, fmt.Errorf("%w: orchestrator %s lacks %s permission", ErrUnauthorized, caller.Hex(), permission)
	}
	return o, nil
}
