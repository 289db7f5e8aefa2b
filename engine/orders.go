package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/rs/zerolog/log"
)

type CreateOrderParams struct {
	Amount       uint64      `json:"amount"`
	Seed         common.Hash `json:"seed"`
	OrderHash    common.Hash `json:"orderHash"`
	Receiver     common.Hash `json:"receiver"`
	SrcChainID   uint32      `json:"srcChainId"`
	DestChainID  uint32      `json:"destChainId"`
	TokenIn      common.Hash `json:"tokenIn"`
	Fee          uint64      `json:"fee"`
	MinAmountOut string      `json:"minAmountOut"`
	TokenOut     common.Hash `json:"tokenOut"`
}

// FillOrderParams repeats the order fields the orchestrator is filling. All of
// them have to match the stored order.
type FillOrderParams struct {
	Amount       uint64      `json:"amount"`
	Seed         common.Hash `json:"seed"`
	OrderHash    common.Hash `json:"orderHash"`
	Trader       common.Hash `json:"trader"`
	SrcChainID   uint32      `json:"srcChainId"`
	DestChainID  uint32      `json:"destChainId"`
	TokenIn      common.Hash `json:"tokenIn"`
	Fee          uint64      `json:"fee"`
	MinAmountOut string      `json:"minAmountOut"`
}

// CreateOrder escrows amount of token in from the trader into the vault and
// records the order.
func (e *Engine) CreateOrder(ctx context.Context, trader common.Hash, params CreateOrderParams) error {
	return e.update("createOrder", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireNotFrozen(g)
		if err != nil {
			return err
		}

		if params.Amount == 0 {
			return fmt.Errorf("%w: zero order amount", ErrInvalidAmount)
		}
		if params.Amount > g.MaxOrderAmount {
			return fmt.Errorf("%w: %d exceeds max order amount %d", ErrInvalidAmount, params.Amount, g.MaxOrderAmount)
		}
		_, err = state.ParseMinAmountOut(params.MinAmountOut)
		if err != nil {
			return translate(err)
		}

		address := state.OrderAddress(trader, params.Seed)
		exists, err := tx.Has(state.OrderKey(address))
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: seed %s of trader %s already used", ErrOrderAlreadyExists, params.Seed.Hex(), trader.Hex())
		}
		exists, err = state.HasOrderHash(tx, params.OrderHash)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: order hash %s", ErrOrderAlreadyExists, params.OrderHash.Hex())
		}

		baseFee, err := state.GetTargetChainMinFee(tx, params.DestChainID)
		if err != nil {
			return err
		}
		_, err = g.Schedule().Split(params.Amount, baseFee, params.Fee)
		if err != nil {
			return translate(err)
		}

		err = e.transfer(ctx, tx, params.TokenIn, trader, state.VaultAccount, params.Amount)
		if err != nil {
			return err
		}

		vault, err := state.GetVault(tx, params.TokenIn)
		if err != nil {
			return err
		}
		err = vault.Escrow(params.Amount)
		if err != nil {
			return translate(err)
		}
		err = state.PutVault(tx, vault)
		if err != nil {
			return err
		}

		err = state.PutOrder(tx, &state.Order{
			OrderHash:    params.OrderHash,
			Seed:         params.Seed,
			Trader:       trader,
			Receiver:     params.Receiver,
			SrcChainID:   params.SrcChainID,
			DestChainID:  params.DestChainID,
			TokenIn:      params.TokenIn,
			TokenOut:     params.TokenOut,
			Amount:       params.Amount,
			Fee:          params.Fee,
			MinAmountOut: params.MinAmountOut,
			Status:       state.OrderCreated,
			Fill:         state.None[state.FillSnapshot](),
		})
		if err != nil {
			return err
		}

		e.metrics.TrackOrderCreated(params.Amount)
		log.Info().
			Str("orderHash", params.OrderHash.Hex()).
			Str("trader", trader.Hex()).
			Str("token", params.TokenIn.Hex()).
			Uint64("amount", params.Amount).
			Msg("Order created")
		return nil
	})
}

// FillOrder is the first fill phase. It collects the order fee into the vault
// pools, releases the rest of the deposit to the orchestrator for routing and
// snapshots the orchestrator token out balance. The payout is verified and
// sent to the receiver by FillOrderTokenTransfer.
func (e *Engine) FillOrder(ctx context.Context, caller common.Hash, params FillOrderParams) error {
	return e.update("fillOrder", func(tx *store.Tx, g *state.GlobalState) error {
		_, err := requireOrchestrator(tx, caller, state.PermissionFillOrder)
		if err != nil {
			return err
		}
		err = requireNotFrozen(g)
		if err != nil {
			return err
		}

		order, err := state.GetOrder(tx, state.OrderAddress(params.Trader, params.Seed))
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: seed %s of trader %s", ErrOrderNotFound, params.Seed.Hex(), params.Trader.Hex())
		}
		if err != nil {
			return err
		}
		err = requireFillable(order)
		if err != nil {
			return err
		}
		err = matchOrder(order, params)
		if err != nil {
			return err
		}

		baseFee, err := state.GetTargetChainMinFee(tx, order.DestChainID)
		if err != nil {
			return err
		}
		breakdown, err := g.Schedule().Split(order.Amount, baseFee, order.Fee)
		if err != nil {
			return translate(err)
		}

		vault, err := state.GetVault(tx, order.TokenIn)
		if err != nil {
			return err
		}
		err = vault.Release(order.Amount)
		if err != nil {
			return translate(err)
		}
		err = vault.CollectFees(breakdown)
		if err != nil {
			return translate(err)
		}
		err = state.PutVault(tx, vault)
		if err != nil {
			return err
		}

		released := order.Amount - order.Fee
		err = e.transfer(ctx, tx, order.TokenIn, state.VaultAccount, caller, released)
		if err != nil {
			return err
		}

		prevBalance, err := e.balanceOf(ctx, tx, order.TokenOut, caller)
		if err != nil {
			return err
		}
		order.Fill = state.Some(state.FillSnapshot{
			Orchestrator: caller,
			PrevBalance:  prevBalance,
			Released:     released,
			Fees:         breakdown,
		})
		err = state.PutOrder(tx, order)
		if err != nil {
			return err
		}

		e.metrics.StartFill(order.OrderHash.Hex())
		log.Info().
			Str("orderHash", order.OrderHash.Hex()).
			Str("orchestrator", caller.Hex()).
			Uint64("released", released).
			Uint64("fee", order.Fee).
			Msg("Order fill started")
		return nil
	})
}

// FillOrderTokenTransfer is the second fill phase. The amount the orchestrator
// received in token out since the snapshot is paid to the receiver if it
// covers minAmountOut.
func (e *Engine) FillOrderTokenTransfer(
	ctx context.Context,
	caller common.Hash,
	orderHash common.Hash,
	minAmountOut uint64,
	prevBalance uint64,
) error {
	return e.update("fillOrderTokenTransfer", func(tx *store.Tx, g *state.GlobalState) error {
		_, err := requireOrchestrator(tx, caller, state.PermissionFillOrder)
		if err != nil {
			return err
		}
		err = requireNotFrozen(g)
		if err != nil {
			return err
		}

		order, err := state.GetOrderByHash(tx, orderHash)
		if err != nil {
			return err
		}
		snapshot, ok := order.Fill.Get()
		if order.Status != state.OrderCreated || !ok {
			return fmt.Errorf("%w: order %s is %s without a pending fill", ErrInvalidOrderStatus, orderHash.Hex(), order.Status)
		}
		if snapshot.Orchestrator != caller {
			return fmt.Errorf("%w: fill of order %s started by %s", ErrUnauthorized, orderHash.Hex(), snapshot.Orchestrator.Hex())
		}
		if snapshot.PrevBalance != prevBalance {
			return fmt.Errorf("%w: previous balance %d does not match snapshot %d", ErrInvalidAmount, prevBalance, snapshot.PrevBalance)
		}

		orderMinAmountOut, err := state.ParseMinAmountOut(order.MinAmountOut)
		if err != nil {
			return translate(err)
		}
		if minAmountOut < orderMinAmountOut {
			return fmt.Errorf("%w: min amount out %d below order min amount out %d", ErrInvalidAmount, minAmountOut, orderMinAmountOut)
		}

		currentBalance, err := e.balanceOf(ctx, tx, order.TokenOut, caller)
		if err != nil {
			return err
		}
		received := uint64(0)
		if currentBalance > snapshot.PrevBalance {
			received = currentBalance - snapshot.PrevBalance
		}
		if received < minAmountOut {
			return fmt.Errorf("%w: received %d, min amount out %d", ErrMinAmountOutNotMet, received, minAmountOut)
		}

		if received > 0 {
			err = e.transfer(ctx, tx, order.TokenOut, caller, order.Receiver, received)
			if err != nil {
				return err
			}
		}

		order.Status = state.OrderFilled
		order.Fill = state.None[state.FillSnapshot]()
		err = state.PutOrder(tx, order)
		if err != nil {
			return err
		}

		e.metrics.EndFill(order.OrderHash.Hex())
		log.Info().
			Str("orderHash", order.OrderHash.Hex()).
			Str("orchestrator", caller.Hex()).
			Str("receiver", order.Receiver.Hex()).
			Uint64("amount", received).
			Msg("Order filled")
		return nil
	})
}

// RevertOrder refunds the full deposit of a created order to the trader. If
// a fill was started the released amount is pulled back from the orchestrator
// and the collected fees are taken out of the vault pools first.
func (e *Engine) RevertOrder(ctx context.Context, caller common.Hash, orderHash common.Hash) error {
	return e.update("revertOrder", func(tx *store.Tx, g *state.GlobalState) error {
		_, err := requireOrchestrator(tx, caller, state.PermissionRevertOrder)
		if err != nil {
			return err
		}

		order, err := state.GetOrderByHash(tx, orderHash)
		if err != nil {
			return err
		}
		if order.Status != state.OrderCreated {
			return fmt.Errorf("%w: order %s is %s", ErrInvalidOrderStatus, order.OrderHash.Hex(), order.Status)
		}

		vault, err := state.GetVault(tx, order.TokenIn)
		if err != nil {
			return err
		}
		snapshot, pending := order.Fill.Get()
		if pending {
			err = vault.RefundFees(snapshot.Fees)
		} else {
			err = vault.Release(order.Amount)
		}
		if err != nil {
			return translate(err)
		}
		err = state.PutVault(tx, vault)
		if err != nil {
			return err
		}

		if pending {
			err = e.transfer(ctx, tx, order.TokenIn, snapshot.Orchestrator, state.VaultAccount, snapshot.Released)
			if err != nil {
				return err
			}
		}
		err = e.transfer(ctx, tx, order.TokenIn, state.VaultAccount, order.Trader, order.Amount)
		if err != nil {
			return err
		}

		order.Status = state.OrderReverted
		order.Fill = state.None[state.FillSnapshot]()
		err = state.PutOrder(tx, order)
		if err != nil {
			return err
		}

		if pending {
			e.metrics.AbortFill(order.OrderHash.Hex())
		}
		e.metrics.TrackOrderReverted(order.Amount)
		log.Info().
			Str("orderHash", order.OrderHash.Hex()).
			Str("orchestrator", caller.Hex()).
			Bool("pendingFill", pending).
			Uint64("amount", order.Amount).
			Msg("Order reverted")
		return nil
	})
}

func requireFillable(order *state.Order) error {
	if order.Status != state.OrderCreated {
		return fmt.Errorf("%w: order %s is %s", ErrInvalidOrderStatus, order.OrderHash.Hex(), order.Status)
	}
	if order.Fill.IsSet() {
		return fmt.Errorf("%w: order %s has a pending fill", ErrInvalidOrderStatus, order.OrderHash.Hex())
	}
	return nil
}

func matchOrder(order *state.Order, params FillOrderParams) error {
	switch {
	case order.OrderHash != params.OrderHash:
		return fmt.Errorf("%w: order hash %s", ErrOrderMismatch, params.OrderHash.Hex())
	case order.Amount != params.Amount:
		return fmt.Errorf("%w: amount %d", ErrOrderMismatch, params.Amount)
	case order.SrcChainID != params.SrcChainID, order.DestChainID != params.DestChainID:
		return fmt.Errorf("%w: route %d -> %d", ErrOrderMismatch, params.SrcChainID, params.DestChainID)
	case order.TokenIn != params.TokenIn:
		return fmt.Errorf("%w: token in %s", ErrOrderMismatch, params.TokenIn.Hex())
	case order.Fee != params.Fee:
		return fmt.Errorf("%w: fee %d", ErrOrderMismatch, params.Fee)
	case order.MinAmountOut != params.MinAmountOut:
		return fmt.Errorf("%w: min amount out %s", ErrOrderMismatch, params.MinAmountOut)
	default:
		return nil
	}
}
