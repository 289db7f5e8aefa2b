package engine

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/rs/zerolog/log"
)

type InitParams struct {
	FreezeAuthorities  []common.Hash
	ThawAuthorities    []common.Hash
	RebalanceThreshold uint16
	CrossChainFeeBps   uint16
	MaxOrderAmount     uint64
	ProtocolFee        fees.Fraction
	// FeeTiers and InsuranceFeeTiers are optional and validated when set
	FeeTiers          fees.TierTable
	InsuranceFeeTiers fees.TierTable
}

// GlobalParams is a partial update of the global parameters. Nil fields are
// left unchanged.
type GlobalParams struct {
	RebalanceThreshold *uint16 `json:"rebalanceThreshold,omitempty"`
	CrossChainFeeBps   *uint16 `json:"crossChainFeeBps,omitempty"`
	MaxOrderAmount     *uint64 `json:"maxOrderAmount,omitempty"`
}

// Initialize creates the global state with the caller as admin. It can only
// be called once.
func (e *Engine) Initialize(caller common.Hash, params InitParams) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	tx := e.db.Begin()
	defer tx.Discard()

	_, err := state.GetGlobalState(tx)
	if err == nil {
		return ErrAlreadyInitialized
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	err = validateBps(uint64(params.RebalanceThreshold), uint64(params.CrossChainFeeBps))
	if err != nil {
		return err
	}
	err = params.ProtocolFee.Validate()
	if err != nil {
		return translate(err)
	}
	for _, tiers := range []fees.TierTable{params.FeeTiers, params.InsuranceFeeTiers} {
		if len(tiers) == 0 {
			continue
		}
		err = tiers.Validate()
		if err != nil {
			return translate(err)
		}
	}

	g := &state.GlobalState{
		Admin:              caller,
		PendingAdmin:       state.None[common.Hash](),
		RebalanceThreshold: params.RebalanceThreshold,
		CrossChainFeeBps:   params.CrossChainFeeBps,
		MaxOrderAmount:     params.MaxOrderAmount,
		ProtocolFee:        params.ProtocolFee,
		FeeTiers:           params.FeeTiers,
		InsuranceFeeTiers:  params.InsuranceFeeTiers,
	}
	for _, id := range params.FreezeAuthorities {
		g.FreezeAuthorities = state.AddAuthority(g.FreezeAuthorities, id)
	}
	for _, id := range params.ThawAuthorities {
		g.ThawAuthorities = state.AddAuthority(g.ThawAuthorities, id)
	}

	err = state.PutGlobalState(tx, g)
	if err != nil {
		return err
	}
	err = tx.Commit()
	if err != nil {
		return err
	}

	log.Info().Str("admin", caller.Hex()).Msg("Initialized global state")
	return nil
}

func (e *Engine) UpdateGlobalStateParams(caller common.Hash, params GlobalParams) error {
	return e.update("updateGlobalStateParams", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		if params.RebalanceThreshold != nil {
			err = validateBps(uint64(*params.RebalanceThreshold))
			if err != nil {
				return err
			}
			g.RebalanceThreshold = *params.RebalanceThreshold
		}
		if params.CrossChainFeeBps != nil {
			err = validateBps(uint64(*params.CrossChainFeeBps))
			if err != nil {
				return err
			}
			g.CrossChainFeeBps = *params.CrossChainFeeBps
		}
		if params.MaxOrderAmount != nil {
			g.MaxOrderAmount = *params.MaxOrderAmount
		}

		log.Info().
			Uint16("rebalanceThreshold", g.RebalanceThreshold).
			Uint16("crossChainFeeBps", g.CrossChainFeeBps).
			Uint64("maxOrderAmount", g.MaxOrderAmount).
			Msg("Updated global state params")
		return state.PutGlobalState(tx, g)
	})
}

// FreezeGlobalState stops order creation and fills. Freezing a frozen state
// is a no-op.
func (e *Engine) FreezeGlobalState(caller common.Hash) error {
	return e.update("freezeGlobalState", func(tx *store.Tx, g *state.GlobalState) error {
		if !g.IsFreezeAuthority(caller) {
			return fmt.Errorf("%w: %s is not a freeze authority", ErrUnauthorized, caller.Hex())
		}
		if g.Frozen {
			return nil
		}

		g.Frozen = true
		log.Warn().Str("authority", caller.Hex()).Msg("Global state frozen")
		return state.PutGlobalState(tx, g)
	})
}

func (e *Engine) ThawGlobalState(caller common.Hash) error {
	return e.update("thawGlobalState", func(tx *store.Tx, g *state.GlobalState) error {
		if !g.IsThawAuthority(caller) {
			return fmt.Errorf("%w: %s is not a thaw authority", ErrUnauthorized, caller.Hex())
		}
		if !g.Frozen {
			return nil
		}

		g.Frozen = false
		log.Info().Str("authority", caller.Hex()).Msg("Global state thawed")
		return state.PutGlobalState(tx, g)
	})
}

func validateBps(values ...uint64) error {
	for _, v := range values {
		if v > fees.BPS_DENOMINATOR {
			return fmt.Errorf("%w: %d bps exceeds %d", ErrInvalidAmount, v, fees.BPS_DENOMINATOR)
		}
	}
	return nil
}
