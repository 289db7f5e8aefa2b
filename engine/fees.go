package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/rs/zerolog/log"
)

func (e *Engine) SetFeeTiers(caller common.Hash, thresholds []uint64, bps []uint64) error {
	return e.update("setFeeTiers", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		tiers, err := fees.NewTierTable(thresholds, bps)
		if err != nil {
			return translate(err)
		}

		g.FeeTiers = tiers
		log.Info().Interface("tiers", tiers).Msg("Updated fee tiers")
		return state.PutGlobalState(tx, g)
	})
}

func (e *Engine) SetInsuranceFeeTiers(caller common.Hash, thresholds []uint64, bps []uint64) error {
	return e.update("setInsuranceFeeTiers", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		tiers, err := fees.NewTierTable(thresholds, bps)
		if err != nil {
			return translate(err)
		}

		g.InsuranceFeeTiers = tiers
		log.Info().Interface("tiers", tiers).Msg("Updated insurance fee tiers")
		return state.PutGlobalState(tx, g)
	})
}

func (e *Engine) SetProtocolFeeFraction(caller common.Hash, numerator uint64, denominator uint64) error {
	return e.update("setProtocolFeeFraction", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		fraction := fees.Fraction{
			Numerator:   numerator,
			Denominator: denominator,
		}
		err = fraction.Validate()
		if err != nil {
			return translate(err)
		}

		g.ProtocolFee = fraction
		log.Info().Msgf("Updated protocol fee fraction to %d/%d", numerator, denominator)
		return state.PutGlobalState(tx, g)
	})
}

// SetTargetChainMinFee sets the base fee every order to the destination
// chain has to pay.
func (e *Engine) SetTargetChainMinFee(caller common.Hash, destChainID uint32, minFee uint64) error {
	return e.update("setTargetChainMinFee", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		log.Info().Uint32("chain", destChainID).Uint64("minFee", minFee).Msg("Updated target chain min fee")
		return state.PutTargetChainMinFee(tx, destChainID, minFee)
	})
}

// QuoteFee returns the minimal fee breakdown for an order of amount to the
// destination chain.
func (e *Engine) QuoteFee(amount uint64, destChainID uint32) (fees.Breakdown, error) {
	var breakdown fees.Breakdown
	err := e.view(func(r store.Reader, g *state.GlobalState) error {
		if amount == 0 {
			return ErrInvalidAmount
		}

		baseFee, err := state.GetTargetChainMinFee(r, destChainID)
		if err != nil {
			return err
		}

		breakdown, err = g.Schedule().Required(amount, baseFee)
		return translate(err)
	})
	return breakdown, err
}
