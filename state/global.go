package state

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/fees"
)

// GlobalState is the single configuration record of the settlement core.
type GlobalState struct {
	Admin             common.Hash          `json:"admin"`
	PendingAdmin      Pending[common.Hash] `json:"pendingAdmin"`
	FreezeAuthorities []common.Hash        `json:"freezeAuthorities"`
	ThawAuthorities   []common.Hash        `json:"thawAuthorities"`
	Frozen            bool                 `json:"frozen"`

	// RebalanceThreshold is the vault imbalance, in bps, at which the off-chain
	// rebalancer moves liquidity between chains
	RebalanceThreshold uint16 `json:"rebalanceThreshold"`
	CrossChainFeeBps   uint16 `json:"crossChainFeeBps"`
	MaxOrderAmount     uint64 `json:"maxOrderAmount"`

	ProtocolFee       fees.Fraction  `json:"protocolFee"`
	FeeTiers          fees.TierTable `json:"feeTiers"`
	InsuranceFeeTiers fees.TierTable `json:"insuranceFeeTiers"`

	Version uint64 `json:"version"`
}

func (g *GlobalState) IsAdmin(id common.Hash) bool {
	return g.Admin == id
}

func (g *GlobalState) IsFreezeAuthority(id common.Hash) bool {
	return slices.Contains(g.FreezeAuthorities, id)
}

func (g *GlobalState) IsThawAuthority(id common.Hash) bool {
	return slices.Contains(g.ThawAuthorities, id)
}

// Schedule returns the fee schedule configured in the global state.
func (g *GlobalState) Schedule() fees.Schedule {
	return fees.Schedule{
		FeeTiers:          g.FeeTiers,
		InsuranceFeeTiers: g.InsuranceFeeTiers,
		CrossChainFeeBps:  uint64(g.CrossChainFeeBps),
		ProtocolFee:       g.ProtocolFee,
	}
}

// AddAuthority appends id to the set unless it is already present.
func AddAuthority(set []common.Hash, id common.Hash) []common.Hash {
	if slices.Contains(set, id) {
		return set
	}
	return append(set, id)
}

// RemoveAuthority removes id from the set and reports whether it was present.
func RemoveAuthority(set []common.Hash, id common.Hash) ([]common.Hash, bool) {
	i := slices.Index(set, id)
	if i == -1 {
		return set, false
	}
	return slices.Delete(set, i, i+1), true
}
