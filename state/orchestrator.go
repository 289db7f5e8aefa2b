package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type Permission uint8

const (
	PermissionFillOrder Permission = iota
	PermissionRevertOrder
	PermissionRemoveBridgeLiquidity
	PermissionClaimBaseFee
	PermissionClaimLPFee
	PermissionClaimProtocolFee
)

func (p Permission) String() string {
	switch p {
	case PermissionFillOrder:
		return "fill-order"
	case PermissionRevertOrder:
		return "revert-order"
	case PermissionRemoveBridgeLiquidity:
		return "remove-bridge-liquidity"
	case PermissionClaimBaseFee:
		return "claim-base-fee"
	case PermissionClaimLPFee:
		return "claim-lp-fee"
	case PermissionClaimProtocolFee:
		return "claim-protocol-fee"
	default:
		return fmt.Sprintf("permission(%d)", uint8(p))
	}
}

type Permissions struct {
	FillOrder             bool `json:"fillOrder" mapstructure:"fillOrder"`
	RevertOrder           bool `json:"revertOrder" mapstructure:"revertOrder"`
	RemoveBridgeLiquidity bool `json:"removeBridgeLiquidity" mapstructure:"removeBridgeLiquidity"`
	ClaimBaseFee          bool `json:"claimBaseFee" mapstructure:"claimBaseFee"`
	ClaimLPFee            bool `json:"claimLpFee" mapstructure:"claimLpFee"`
	ClaimProtocolFee      bool `json:"claimProtocolFee" mapstructure:"claimProtocolFee"`
}

func (p Permissions) Has(permission Permission) bool {
	switch permission {
	case PermissionFillOrder:
		return p.FillOrder
	case PermissionRevertOrder:
		return p.RevertOrder
	case PermissionRemoveBridgeLiquidity:
		return p.RemoveBridgeLiquidity
	case PermissionClaimBaseFee:
		return p.ClaimBaseFee
	case PermissionClaimLPFee:
		return p.ClaimLPFee
	case PermissionClaimProtocolFee:
		return p.ClaimProtocolFee
	default:
		return false
	}
}

// Orchestrator is the permission record of a relayer. Removed orchestrators
// keep their record so past fills and claims still resolve to an identity.
type Orchestrator struct {
	Address     common.Hash `json:"address"`
	Permissions Permissions `json:"permissions"`
	Removed     bool        `json:"removed"`
}

// Can reports whether the orchestrator is active and holds the permission.
func (o *Orchestrator) Can(permission Permission) bool {
	return !o.Removed && o.Permissions.Has(permission)
}
