package fees

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidTiers = errors.New("invalid fee tiers")
	ErrOverflow     = errors.New("arithmetic overflow")
)

const (
	BPS_DENOMINATOR uint64 = 10000
)

// Tier is a single bracket of a fee schedule. Amounts at or above Threshold
// (and below the next tier's threshold) are charged Bps on the whole amount.
type Tier struct {
	Threshold uint64 `json:"threshold" mapstructure:"threshold"`
	Bps       uint64 `json:"bps" mapstructure:"bps"`
}

// TierTable is a bracketed fee schedule sorted by strictly ascending threshold.
type TierTable []Tier

// NewTierTable pairs threshold amounts with their bps fees and validates the result.
func NewTierTable(thresholds []uint64, bps []uint64) (TierTable, error) {
	if len(thresholds) != len(bps) {
		return nil, fmt.Errorf("%w: %d thresholds for %d fees", ErrInvalidTiers, len(thresholds), len(bps))
	}

	table := make(TierTable, len(thresholds))
	for i := range thresholds {
		table[i] = Tier{
			Threshold: thresholds[i],
			Bps:       bps[i],
		}
	}

	err := table.Validate()
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (t TierTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidTiers)
	}

	for i, tier := range t {
		if tier.Bps > BPS_DENOMINATOR {
			return fmt.Errorf("%w: tier %d fee %d bps exceeds %d", ErrInvalidTiers, i, tier.Bps, BPS_DENOMINATOR)
		}
		if i > 0 && tier.Threshold <= t[i-1].Threshold {
			return fmt.Errorf("%w: threshold %d not above %d", ErrInvalidTiers, tier.Threshold, t[i-1].Threshold)
		}
	}
	return nil
}

// Tier returns the bracket the amount falls into: the tier with the greatest
// threshold not above amount, or the first tier when amount is below all of them.
func (t TierTable) Tier(amount uint64) (Tier, bool) {
	if len(t) == 0 {
		return Tier{}, false
	}

	i := sort.Search(len(t), func(i int) bool {
		return t[i].Threshold > amount
	})
	if i == 0 {
		return t[0], true
	}
	return t[i-1], true
}

// Lookup returns the bps fee of the bracket the amount falls into.
func (t TierTable) Lookup(amount uint64) (uint64, bool) {
	tier, ok := t.Tier(amount)
	return tier.Bps, ok
}

func (t TierTable) Thresholds() []uint64 {
	thresholds := make([]uint64, len(t))
	for i, tier := range t {
		thresholds[i] = tier.Threshold
	}
	return thresholds
}
