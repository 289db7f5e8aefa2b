package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jong-un-1/mcp-cross-chain/config"
	"github.com/jong-un-1/mcp-cross-chain/engine"
	"github.com/rs/zerolog/log"
)

// Bootstrap writes the genesis state on the first start of the service. It
// is a no-op when the state is already initialized.
func Bootstrap(ctx context.Context, e *engine.Engine, minter engine.Minter, genesis config.GenesisConfig) error {
	err := e.Initialize(genesis.Admin, engine.InitParams{
		FreezeAuthorities:  genesis.FreezeAuthorities,
		ThawAuthorities:    genesis.ThawAuthorities,
		RebalanceThreshold: genesis.RebalanceThreshold,
		CrossChainFeeBps:   genesis.CrossChainFeeBps,
		MaxOrderAmount:     genesis.MaxOrderAmount,
		ProtocolFee:        genesis.ProtocolFee,
		FeeTiers:           genesis.FeeTiers,
		InsuranceFeeTiers:  genesis.InsuranceFeeTiers,
	})
	if errors.Is(err, engine.ErrAlreadyInitialized) {
		log.Info().Msg("Settlement state already initialized, skipping genesis")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to initialize settlement state: %w", err)
	}

	for chainID, minFee := range genesis.TargetChainMinFees {
		err = e.SetTargetChainMinFee(genesis.Admin, chainID, minFee)
		if err != nil {
			return fmt.Errorf("unable to set min fee of chain %d: %w", chainID, err)
		}
	}

	for _, o := range genesis.Orchestrators {
		err = e.AddOrchestrator(genesis.Admin, o.Address, o.Permissions)
		if err != nil {
			return fmt.Errorf("unable to add orchestrator %s: %w", o.Address.Hex(), err)
		}
	}

	for _, b := range genesis.Balances {
		err = e.Mint(ctx, minter, b.Token, b.Account, b.Amount)
		if err != nil {
			return fmt.Errorf("unable to mint genesis balance of %s: %w", b.Account.Hex(), err)
		}
	}

	log.Info().
		Int("orchestrators", len(genesis.Orchestrators)).
		Int("balances", len(genesis.Balances)).
		Msg("Wrote genesis state")
	return nil
}
