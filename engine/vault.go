package engine

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/rs/zerolog/log"
)

// ClaimFees pays amount out of the unclaimed fee pool of the fee type to the
// claiming orchestrator.
func (e *Engine) ClaimFees(ctx context.Context, caller common.Hash, token common.Hash, amount uint64, feeType state.FeeType) error {
	return e.update("claimFees", func(tx *store.Tx, g *state.GlobalState) error {
		_, err := requireOrchestrator(tx, caller, feeType.Permission())
		if err != nil {
			return err
		}
		if amount == 0 {
			return fmt.Errorf("%w: zero claim", ErrInvalidAmount)
		}

		vault, err := state.GetVault(tx, token)
		if err != nil {
			return err
		}
		err = vault.Claim(feeType, amount)
		if err != nil {
			return translate(err)
		}
		err = state.PutVault(tx, vault)
		if err != nil {
			return err
		}

		err = e.transfer(ctx, tx, token, state.VaultAccount, caller, amount)
		if err != nil {
			return err
		}

		e.metrics.TrackFeesClaimed(feeType.String(), amount)
		log.Info().
			Str("orchestrator", caller.Hex()).
			Str("token", token.Hex()).
			Str("feeType", feeType.String()).
			Uint64("amount", amount).
			Msg("Fees claimed")
		return nil
	})
}

// RemoveBridgeLiquidity withdraws bridge liquidity to the orchestrator.
func (e *Engine) RemoveBridgeLiquidity(ctx context.Context, caller common.Hash, token common.Hash, amount uint64) error {
	return e.update("removeBridgeLiquidity", func(tx *store.Tx, g *state.GlobalState) error {
		_, err := requireOrchestrator(tx, caller, state.PermissionRemoveBridgeLiquidity)
		if err != nil {
			return err
		}
		if amount == 0 {
			return fmt.Errorf("%w: zero liquidity", ErrInvalidAmount)
		}

		vault, err := state.GetVault(tx, token)
		if err != nil {
			return err
		}
		err = vault.RemoveLiquidity(amount)
		if err != nil {
			return translate(err)
		}
		err = state.PutVault(tx, vault)
		if err != nil {
			return err
		}

		err = e.transfer(ctx, tx, token, state.VaultAccount, caller, amount)
		if err != nil {
			return err
		}

		e.metrics.TrackLiquidityRemoved(amount)
		log.Info().
			Str("orchestrator", caller.Hex()).
			Str("token", token.Hex()).
			Uint64("amount", amount).
			Msg("Bridge liquidity removed")
		return nil
	})
}

func (e *Engine) AddBridgeLiquidity(ctx context.Context, caller common.Hash, token common.Hash, amount uint64) error {
	return e.update("addBridgeLiquidity", func(tx *store.Tx, g *state.GlobalState) error {
		if amount == 0 {
			return fmt.Errorf("%w: zero liquidity", ErrInvalidAmount)
		}

		err := e.transfer(ctx, tx, token, caller, state.VaultAccount, amount)
		if err != nil {
			return err
		}

		vault, err := state.GetVault(tx, token)
		if err != nil {
			return err
		}
		err = vault.AddLiquidity(amount)
		if err != nil {
			return translate(err)
		}

		log.Info().
			Str("provider", caller.Hex()).
			Str("token", token.Hex()).
			Uint64("amount", amount).
			Msg("Bridge liquidity added")
		return state.PutVault(tx, vault)
	})
}

type Minter interface {
	Credit(ctx context.Context, rw store.ReadWriter, token common.Hash, account common.Hash, amount uint64) error
}

// Mint credits new funds to the account through the minter. It backs the
// genesis balances and the faucet of test deployments.
func (e *Engine) Mint(ctx context.Context, minter Minter, token common.Hash, account common.Hash, amount uint64) error {
	return e.update("mint", func(tx *store.Tx, g *state.GlobalState) error {
		if amount == 0 {
			return fmt.Errorf("%w: zero mint", ErrInvalidAmount)
		}

		err := minter.Credit(ctx, tx, token, account, amount)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTransferFailed, err)
		}

		log.Debug().Str("account", account.Hex()).Str("token", token.Hex()).Uint64("amount", amount).Msg("Minted funds")
		return nil
	})
}
