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

package collateral

import (
	"sync"

	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/logging"

	"github.com/pkg/errors"
)

// Errors.
var (
	// ErrInsufficientCollateral signals an attempt to remove more collateral
	// than the party has deposited for that asset.
	ErrInsufficientCollateral = errors.New("insufficient collateral balance")
	// ErrInsufficientDebt signals an attempt to repay more debt than the
	// party has outstanding.
	ErrInsufficientDebt = errors.New("insufficient outstanding debt")
)

// Engine is the single source of truth for per-party collateral positions
// and outstanding synthetic-dollar debt. It is exclusively owned by the dsc
// engine, nothing else mutates it. Accounts are implicit: a party with no
// recorded balance simply reads as zero, entries are never deleted.
type Engine struct {
	Config
	log *logging.Logger

	mu sync.RWMutex
	// party -> asset -> deposited amount (18 decimals)
	collateral map[string]map[string]*num.Uint
	// party -> synthetic-dollar debt (18 decimals)
	debt map[string]*num.Uint
}

// New instantiates a new collateral ledger engine.
func New(log *logging.Logger, cfg Config) *Engine {
	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Engine{
		Config:     cfg,
		log:        log,
		collateral: map[string]map[string]*num.Uint{},
		debt:       map[string]*num.Uint{},
	}
}

// ReloadConf update the internal configuration of the collateral engine.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}

	e.Config = cfg
}

// AddCollateral increases the party's collateral position for the asset.
func (e *Engine) AddCollateral(party, asset string, amount *num.Uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	balances, ok := e.collateral[party]
	if !ok {
		balances = map[string]*num.Uint{}
		e.collateral[party] = balances
	}
	bal, ok := balances[asset]
	if !ok {
		bal = num.UintZero()
		balances[asset] = bal
	}
	bal.Add(bal, amount)
}

// RemoveCollateral decreases the party's collateral position for the asset.
// The requested amount must not exceed the recorded balance, the balance is
// left untouched otherwise.
func (e *Engine) RemoveCollateral(party, asset string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	bal, ok := e.collateral[party][asset]
	if !ok || bal.LT(amount) {
		return ErrInsufficientCollateral
	}
	bal.Sub(bal, amount)
	return nil
}

// AddDebt increases the party's outstanding debt.
func (e *Engine) AddDebt(party string, amount *num.Uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.debt[party]
	if !ok {
		d = num.UintZero()
		e.debt[party] = d
	}
	d.Add(d, amount)
}

// RemoveDebt decreases the party's outstanding debt. The requested amount
// must not exceed the recorded debt, the balance is left untouched
// otherwise.
func (e *Engine) RemoveDebt(party string, amount *num.Uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.debt[party]
	if !ok || d.LT(amount) {
		return ErrInsufficientDebt
	}
	d.Sub(d, amount)
	return nil
}

// CollateralAmount returns the party's deposited amount for the asset, zero
// when the party never deposited any.
func (e *Engine) CollateralAmount(party, asset string) *num.Uint {
	e.mu.RLock()
	defer e.mu.RUnlock()

	bal, ok := e.collateral[party][asset]
	if !ok {
		return num.UintZero()
	}
	return bal.Clone()
}

// Debt returns the party's outstanding debt, zero when the party never
// minted any.
func (e *Engine) Debt(party string) *num.Uint {
	e.mu.RLock()
	defer e.mu.RUnlock()

	d, ok := e.debt[party]
	if !ok {
		return num.UintZero()
	}
	return d.Clone()
}
