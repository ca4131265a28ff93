// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package dsc

import (
	"fmt"

	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"

	"github.com/pkg/errors"
)

// Errors. Every error rejects the whole operation, state is left exactly as
// before the call.
var (
	// ErrAmountMustBePositive is returned when a zero amount is passed to
	// any mutating entry point.
	ErrAmountMustBePositive = errors.New("amount must be greater than zero")
	// ErrEngineBusy is returned when a mutating entry point is invoked
	// while another mutating operation is in flight, including re-entrant
	// calls made by a collaborator during an external call-out.
	ErrEngineBusy = errors.New("engine busy, mutating operation in flight")
	// ErrTransferFailed is returned when the custody or token collaborator
	// reports a failed transfer. Never retried.
	ErrTransferFailed = errors.New("transfer failed")
	// ErrMintFailed is returned when the stablecoin collaborator refuses to
	// mint.
	ErrMintFailed = errors.New("mint failed")
	// ErrHealthFactorOK is returned when trying to liquidate a position
	// that meets the minimum health factor.
	ErrHealthFactorOK = errors.New("position is healthy, cannot be liquidated")
	// ErrHealthFactorNotImproved is returned when a liquidation does not
	// strictly improve the target's health factor.
	ErrHealthFactorNotImproved = errors.New("liquidation did not improve health factor")
	// ErrBreaksHealthFactor is the sentinel matched by errors.Is for
	// BreachedHealthFactorError.
	ErrBreaksHealthFactor = errors.New("operation breaks the minimum health factor")
)

// BreachedHealthFactorError is returned when an operation would leave an
// account below the minimum health factor. It carries the resulting ratio
// so the caller can act on it.
type BreachedHealthFactorError struct {
	HealthFactor *num.Uint
}

func (e BreachedHealthFactorError) Error() string {
	return fmt.Sprintf("operation breaks the minimum health factor, health factor: %s", e.HealthFactor.String())
}

// Unwrap makes errors.Is(err, ErrBreaksHealthFactor) hold.
func (e BreachedHealthFactorError) Unwrap() error {
	return ErrBreaksHealthFactor
}
