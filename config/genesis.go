package config

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/fees"
	"github.com/jong-un-1/mcp-cross-chain/state"
)

// GenesisConfig is the settlement state written on the first start of the
// service.
type GenesisConfig struct {
	Admin             common.Hash
	FreezeAuthorities []common.Hash
	ThawAuthorities   []common.Hash

	RebalanceThreshold uint16
	CrossChainFeeBps   uint16
	MaxOrderAmount     uint64
	ProtocolFee        fees.Fraction
	FeeTiers           fees.TierTable
	InsuranceFeeTiers  fees.TierTable
	// destination chain id -> min fee
	TargetChainMinFees map[uint32]uint64

	Orchestrators []state.Orchestrator
	Balances      []Balance
}

type Balance struct {
	Token   common.Hash
	Account common.Hash
	Amount  uint64
}

type RawGenesisConfig struct {
	Admin             string   `mapstructure:"admin" json:"admin"`
	FreezeAuthorities []string `mapstructure:"freezeAuthorities" json:"freezeAuthorities"`
	ThawAuthorities   []string `mapstructure:"thawAuthorities" json:"thawAuthorities"`

	RebalanceThreshold uint16            `mapstructure:"rebalanceThreshold" json:"rebalanceThreshold" default:"2000"`
	CrossChainFeeBps   uint16            `mapstructure:"crossChainFeeBps" json:"crossChainFeeBps" default:"30"`
	MaxOrderAmount     uint64            `mapstructure:"maxOrderAmount" json:"maxOrderAmount" default:"1000000000000"`
	ProtocolFee        fees.Fraction     `mapstructure:"protocolFee" json:"protocolFee"`
	FeeTiers           []fees.Tier       `mapstructure:"feeTiers" json:"feeTiers"`
	InsuranceFeeTiers  []fees.Tier       `mapstructure:"insuranceFeeTiers" json:"insuranceFeeTiers"`
	TargetChainMinFees map[string]uint64 `mapstructure:"targetChainMinFees" json:"targetChainMinFees"`

	Orchestrators []RawOrchestratorConfig `mapstructure:"orchestrators" json:"orchestrators"`
	Balances      []RawBalanceConfig      `mapstructure:"balances" json:"balances"`
}

type RawOrchestratorConfig struct {
	Address     string            `mapstructure:"address" json:"address"`
	Permissions state.Permissions `mapstructure:"permissions" json:"permissions"`
}

type RawBalanceConfig struct {
	Token   string `mapstructure:"token" json:"token"`
	Account string `mapstructure:"account" json:"account"`
	Amount  uint64 `mapstructure:"amount" json:"amount"`
}

func (c *RawGenesisConfig) Validate() error {
	if c.Admin == "" {
		return fmt.Errorf("required field genesis.admin empty")
	}
	if c.ProtocolFee.Denominator == 0 {
		return fmt.Errorf("genesis.protocolFee.denominator can not be zero")
	}
	return nil
}

func newGenesisConfig(raw RawGenesisConfig) (GenesisConfig, error) {
	err := raw.Validate()
	if err != nil {
		return GenesisConfig{}, err
	}

	admin, err := state.ParseHash(raw.Admin)
	if err != nil {
		return GenesisConfig{}, fmt.Errorf("genesis.admin: %w", err)
	}
	freezeAuthorities, err := parseHashes(raw.FreezeAuthorities)
	if err != nil {
		return GenesisConfig{}, fmt.Errorf("genesis.freezeAuthorities: %w", err)
	}
	thawAuthorities, err := parseHashes(raw.ThawAuthorities)
	if err != nil {
		return GenesisConfig{}, fmt.Errorf("genesis.thawAuthorities: %w", err)
	}

	feeTiers := fees.TierTable(raw.FeeTiers)
	if len(feeTiers) > 0 {
		err = feeTiers.Validate()
		if err != nil {
			return GenesisConfig{}, fmt.Errorf("genesis.feeTiers: %w", err)
		}
	}
	insuranceFeeTiers := fees.TierTable(raw.InsuranceFeeTiers)
	if len(insuranceFeeTiers) > 0 {
		err = insuranceFeeTiers.Validate()
		if err != nil {
			return GenesisConfig{}, fmt.Errorf("genesis.insuranceFeeTiers: %w", err)
		}
	}

	minFees := make(map[uint32]uint64)
	for chain, minFee := range raw.TargetChainMinFees {
		chainID, err := strconv.ParseUint(chain, 10, 32)
		if err != nil {
			return GenesisConfig{}, fmt.Errorf("genesis.targetChainMinFees: invalid chain id %s", chain)
		}
		minFees[uint32(chainID)] = minFee
	}

	orchestrators := make([]state.Orchestrator, len(raw.Orchestrators))
	for i, o := range raw.Orchestrators {
		address, err := state.ParseHash(o.Address)
		if err != nil {
			return GenesisConfig{}, fmt.Errorf("genesis.orchestrators[%d]: %w", i, err)
		}
		orchestrators[i] = state.Orchestrator{
			Address:     address,
			Permissions: o.Permissions,
		}
	}

	balances := make([]Balance, len(raw.Balances))
	for i, b := range raw.Balances {
		token, err := state.ParseHash(b.Token)
		if err != nil {
			return GenesisConfig{}, fmt.Errorf("genesis.balances[%d].token: %w", i, err)
		}
		account, err := state.ParseHash(b.Account)
		if err != nil {
			return GenesisConfig{}, fmt.Errorf("genesis.balances[%d].account: %w", i, err)
		}
		balances[i] = Balance{
			Token:   token,
			Account: account,
			Amount:  b.Amount,
		}
	}

	return GenesisConfig{
		Admin:              admin,
		FreezeAuthorities:  freezeAuthorities,
		ThawAuthorities:    thawAuthorities,
		RebalanceThreshold: raw.RebalanceThreshold,
		CrossChainFeeBps:   raw.CrossChainFeeBps,
		MaxOrderAmount:     raw.MaxOrderAmount,
		ProtocolFee:        raw.ProtocolFee,
		FeeTiers:           feeTiers,
		InsuranceFeeTiers:  insuranceFeeTiers,
		TargetChainMinFees: minFees,
		Orchestrators:      orchestrators,
		Balances:           balances,
	}, nil
}

func parseHashes(values []string) ([]common.Hash, error) {
	hashes := make([]common.Hash, len(values))
	for i, v := range values {
		hash, err := state.ParseHash(v)
		if err != nil {
			return nil, err
		}
		hashes[i] = hash
	}
	return hashes, nil
}
