package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
)

func (e *Engine) GlobalState() (*state.GlobalState, error) {
	var global *state.GlobalState
	err := e.view(func(r store.Reader, g *state.GlobalState) error {
		global = g
		return nil
	})
	return global, err
}

func (e *Engine) Orchestrator(id common.Hash) (*state.Orchestrator, error) {
	var o *state.Orchestrator
	err := e.view(func(r store.Reader, g *state.GlobalState) error {
		var err error
		o, err = state.GetOrchestrator(r, id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: orchestrator %s", ErrNotFound, id.Hex())
		}
		return err
	})
	return o, err
}

func (e *Engine) Orchestrators() ([]*state.Orchestrator, error) {
	return list[state.Orchestrator](e, state.OrchestratorPrefix)
}

func (e *Engine) Order(orderHash common.Hash) (*state.Order, error) {
	var order *state.Order
	err := e.view(func(r store.Reader, g *state.GlobalState) error {
		var err error
		order, err = state.GetOrderByHash(r, orderHash)
		return err
	})
	return order, err
}

// Orders returns all orders ordered by their storage address.
func (e *Engine) Orders() ([]*state.Order, error) {
	return list[state.Order](e, state.OrderPrefix)
}

func (e *Engine) Vault(token common.Hash) (*state.Vault, error) {
	var vault *state.Vault
	err := e.view(func(r store.Reader, g *state.GlobalState) error {
		var err error
		vault, err = state.GetVault(r, token)
		return err
	})
	return vault, err
}

func (e *Engine) Vaults() ([]*state.Vault, error) {
	return list[state.Vault](e, state.VaultPrefix)
}

func (e *Engine) TargetChainMinFee(destChainID uint32) (uint64, error) {
	var minFee uint64
	err := e.view(func(r store.Reader, g *state.GlobalState) error {
		var err error
		minFee, err = state.GetTargetChainMinFee(r, destChainID)
		return err
	})
	return minFee, err
}

func (e *Engine) BalanceOf(ctx context.Context, token common.Hash, account common.Hash) (uint64, error) {
	var balance uint64
	err := e.view(func(r store.Reader, g *state.GlobalState) error {
		var err error
		balance, err = e.balanceOf(ctx, r, token, account)
		return err
	})
	return balance, err
}

func list[T any](e *Engine, prefix []byte) ([]*T, error) {
	items := make([]*T, 0)
	err := e.view(func(r store.Reader, g *state.GlobalState) error {
		var decodeErr error
		err := e.db.Iterate(prefix, func(key []byte, value []byte) bool {
			item := new(T)
			decodeErr = json.Unmarshal(value, item)
			if decodeErr != nil {
				return false
			}
			items = append(items, item)
			return true
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
	return items, err
}
