// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind is the stable identifier of a guard failure.
type Kind string

const (
	PalletLocked              Kind = "PalletLocked"
	UnknownContract           Kind = "UnknownContract"
	UnknownContractCollection Kind = "UnknownContractCollection"
	UnknownCreator            Kind = "UnknownCreator"
	CreatorOwnership          Kind = "CreatorOwnership"
	ContractOwnership         Kind = "ContractOwnership"
	Ownership                 Kind = "Ownership"
	InvalidNFTStakeAmount     Kind = "InvalidNFTStakeAmount"
	InvalidNFTFeeAmount       Kind = "InvalidNFTFeeAmount"
	UnfulfilledStakingClause  Kind = "UnfulfilledStakingClause"
	UnfulfilledFeeClause      Kind = "UnfulfilledFeeClause"
	Inactive                  Kind = "Inactive"
	Staking                   Kind = "Staking"
	Claimable                 Kind = "Claimable"
	Available                 Kind = "Available"
	Unsnipeable               Kind = "Unsnipeable"
	InsufficientReserveFunds  Kind = "InsufficientReserveFunds"
	InsufficientBalance       Kind = "InsufficientBalance"
	UnknownActivation         Kind = "UnknownActivation"
	MaxContracts              Kind = "MaxContracts"
	IncorrectNumberOfClauses  Kind = "IncorrectNumberOfClauses"
	IncorrectNumberOfRewards  Kind = "IncorrectNumberOfRewards"
	InvalidContract           Kind = "InvalidContract"
	InvalidTargetIndex        Kind = "InvalidTargetIndex"
	BadOrigin                 Kind = "BadOrigin"
)

type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	if e.message == "" {
		return string(e.kind)
	}
	return string(e.kind) + ": " + e.message
}

// Kind returns the failure kind.
func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Is reports whether err is a revert of the given kind.
func Is(err error, kind Kind) bool {
	var ve *ErrRevert
	if !errors.As(err, &ve) {
		return false
	}
	return ve.kind == kind
}

// KindOf returns the kind of a revert error, empty for other errors.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if !errors.As(err, &ve) {
		return ""
	}
	return ve.kind
}
