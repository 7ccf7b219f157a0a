// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"fmt"

	"github.com/vechain/nftstake/builtin/nftstake/reverts"
)

// Phase is the lifecycle position of a contract at a given block.
// It is derived from block numbers and never stored.
type Phase uint8

const (
	Inactive Phase = iota
	Active
	Expired
	Staking
	Claimable
	Snipeable
	Settled
)

var phaseNames = [...]string{"inactive", "active", "expired", "staking", "claimable", "snipeable", "settled"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// IsOffer returns whether the contract has not been accepted.
func (p Phase) IsOffer() bool {
	return p <= Expired
}

// PhaseAt derives the phase at block now. acceptedAt is nil for contracts not accepted.
// Bounds are inclusive as follows:
//
//	activation <= now <= activation+activeDuration                       Active
//	acceptedAt <= now <  acceptedAt+stakeDuration                         Staking
//	acceptedAt+stakeDuration <= now <= acceptedAt+stakeDuration+claimDuration  Claimable
func (c *Contract) PhaseAt(now uint32, acceptedAt *uint32) (Phase, error) {
	n := uint64(now)
	if acceptedAt == nil {
		if c.Activation == nil {
			return 0, reverts.New(reverts.UnknownActivation, "contract without activation")
		}
		start := uint64(*c.Activation)
		switch {
		case n < start:
			return Inactive, nil
		case n <= start+uint64(c.ActiveDuration):
			return Active, nil
		default:
			return Expired, nil
		}
	}

	lockEnd := uint64(*acceptedAt) + uint64(c.StakeDuration)
	switch {
	case n < lockEnd:
		return Staking, nil
	case n <= lockEnd+uint64(c.ClaimDuration):
		return Claimable, nil
	default:
		return Snipeable, nil
	}
}
