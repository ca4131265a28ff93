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
	"context"
	"sync/atomic"
	"time"

	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/collateral"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/events"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/oracles"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/risk"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/logging"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/metrics"

	"github.com/pkg/errors"
)

// Stablecoin is the boundary to the synthetic-dollar token. The engine only
// observes success or failure, actual token balance bookkeeping lives with
// the collaborator.
type Stablecoin interface {
	// Mint creates amount new tokens for the party.
	Mint(party string, amount *num.Uint) error
	// TransferFrom moves amount tokens from the party to the engine.
	TransferFrom(party string, amount *num.Uint) error
	// Burn destroys amount tokens held by the engine.
	Burn(amount *num.Uint) error
}

// Custody is the boundary to collateral asset custody.
type Custody interface {
	// TransferFrom moves amount of the asset from the party into custody.
	TransferFrom(party, asset string, amount *num.Uint) error
	// Transfer moves amount of the asset out of custody to the party.
	Transfer(to, asset string, amount *num.Uint) error
}

// Broker - the event bus broker, send events here.
type Broker interface {
	Send(event events.Event)
	SendBatch(events []events.Event)
}

// Engine is the collateralized-debt accounting engine. It owns the
// collateral/debt ledger, prices positions through the oracle adapter, and
// enforces the global solvency invariant on every mutation. External token
// and custody movements are delegated to opaque collaborators whose failure
// aborts the whole operation.
type Engine struct {
	Config
	log *logging.Logger

	ledger  *collateral.Engine
	oracle  *oracles.Adapter
	dsc     Stablecoin
	custody Custody
	broker  Broker

	// exclusive entry guard, see acquire
	busy atomic.Bool
}

// New instantiates the engine. The assets and feeds lists pair up one to
// one, a length mismatch is a fatal construction error.
func New(
	log *logging.Logger,
	cfg Config,
	assets []string,
	feeds []oracles.PriceFeed,
	stablecoin Stablecoin,
	custody Custody,
	broker Broker,
) (*Engine, error) {
	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	oracle, err := oracles.NewAdapter(log, cfg.Oracles, assets, feeds)
	if err != nil {
		return nil, err
	}

	return &Engine{
		Config:  cfg,
		log:     log,
		ledger:  collateral.New(log, cfg.Collateral),
		oracle:  oracle,
		dsc:     stablecoin,
		custody: custody,
		broker:  broker,
	}, nil
}

// ReloadConf update the internal configuration of the dsc engine.
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
	e.ledger.ReloadConf(cfg.Collateral)
	e.oracle.ReloadConf(cfg.Oracles)
}

// acquire takes the exclusive entry guard. The guard is held for the whole
// mutating operation, external call-outs included, and released on every
// exit path. A collaborator re-entering the engine during a call-out is
// rejected with ErrEngineBusy instead of observing the gap between "ledger
// updated" and "assets moved" - or deadlocking on a blocking lock.
func (e *Engine) acquire() error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrEngineBusy
	}
	return nil
}

func (e *Engine) release() {
	e.busy.Store(false)
}

func validAmount(amount *num.Uint) error {
	if amount == nil || amount.IsZero() {
		return ErrAmountMustBePositive
	}
	return nil
}

func (e *Engine) validAsset(asset string) error {
	if !e.oracle.IsSupported(asset) {
		return oracles.ErrAssetNotSupported
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// DepositCollateral increases the party's collateral position and pulls the
// deposited amount into custody. Deposits only ever improve health, so no
// invariant check is needed.
func (e *Engine) DepositCollateral(ctx context.Context, party, asset string, amount *num.Uint) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), "dsc", "DepositCollateral")
	defer func() { metrics.OperationCountInc("deposit_collateral", outcome(err)) }()

	if err = validAmount(amount); err != nil {
		return err
	}
	if err = e.validAsset(asset); err != nil {
		return err
	}
	if err = e.acquire(); err != nil {
		return err
	}
	defer e.release()

	return e.depositCollateral(ctx, party, asset, amount)
}

func (e *Engine) depositCollateral(ctx context.Context, party, asset string, amount *num.Uint) error {
	e.ledger.AddCollateral(party, asset, amount)
	if err := e.custody.TransferFrom(party, asset, amount); err != nil {
		if rerr := e.ledger.RemoveCollateral(party, asset, amount); rerr != nil {
			e.log.Panic("could not roll back collateral deposit",
				logging.PartyID(party),
				logging.AssetID(asset),
				logging.Error(rerr),
			)
		}
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	e.broker.Send(events.NewCollateralDepositedEvent(ctx, party, asset, amount))
	return nil
}

// MintDsc increases the party's debt and mints the synthetic-dollar tokens.
// The party's health factor must meet the minimum after the increase.
func (e *Engine) MintDsc(ctx context.Context, party string, amount *num.Uint) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), "dsc", "MintDsc")
	defer func() { metrics.OperationCountInc("mint_dsc", outcome(err)) }()

	if err = validAmount(amount); err != nil {
		return err
	}
	if err = e.acquire(); err != nil {
		return err
	}
	defer e.release()

	return e.mintDsc(ctx, party, amount)
}

func (e *Engine) mintDsc(ctx context.Context, party string, amount *num.Uint) error {
	e.ledger.AddDebt(party, amount)
	rollback := func() {
		if rerr := e.ledger.RemoveDebt(party, amount); rerr != nil {
			e.log.Panic("could not roll back debt increase",
				logging.PartyID(party),
				logging.Error(rerr),
			)
		}
	}
	if err := e.checkHealth(party); err != nil {
		rollback()
		return err
	}
	if err := e.dsc.Mint(party, amount); err != nil {
		rollback()
		return errors.Wrap(ErrMintFailed, err.Error())
	}
	e.broker.Send(events.NewDebtMintedEvent(ctx, party, amount))
	return nil
}

// DepositCollateralAndMintDsc runs deposit and mint as one operation with a
// single external effect ordering: ledger first, then custody, then mint.
func (e *Engine) DepositCollateralAndMintDsc(ctx context.Context, party, asset string, amount, mintAmount *num.Uint) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), "dsc", "DepositCollateralAndMintDsc")
	defer func() { metrics.OperationCountInc("deposit_collateral_and_mint_dsc", outcome(err)) }()

	if err = validAmount(amount); err != nil {
		return err
	}
	if err = validAmount(mintAmount); err != nil {
		return err
	}
	if err = e.validAsset(asset); err != nil {
		return err
	}
	if err = e.acquire(); err != nil {
		return err
	}
	defer e.release()

	e.ledger.AddCollateral(party, asset, amount)
	e.ledger.AddDebt(party, mintAmount)
	rollback := func() {
		rerr := e.ledger.RemoveDebt(party, mintAmount)
		if cerr := e.ledger.RemoveCollateral(party, asset, amount); rerr != nil || cerr != nil {
			e.log.Panic("could not roll back deposit and mint",
				logging.PartyID(party),
				logging.AssetID(asset),
			)
		}
	}
	if err := e.checkHealth(party); err != nil {
		rollback()
		return err
	}
	if err := e.custody.TransferFrom(party, asset, amount); err != nil {
		rollback()
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	if err := e.dsc.Mint(party, mintAmount); err != nil {
		// hand the deposited collateral back before rolling the ledger back
		if cerr := e.custody.Transfer(party, asset, amount); cerr != nil {
			e.log.Panic("could not return collateral after failed mint",
				logging.PartyID(party),
				logging.AssetID(asset),
				logging.Error(cerr),
			)
		}
		rollback()
		return errors.Wrap(ErrMintFailed, err.Error())
	}
	e.broker.SendBatch([]events.Event{
		events.NewCollateralDepositedEvent(ctx, party, asset, amount),
		events.NewDebtMintedEvent(ctx, party, mintAmount),
	})
	return nil
}

// RedeemCollateral decreases the party's collateral position and releases
// the amount from custody. The party's health factor must still meet the
// minimum after the reduction.
func (e *Engine) RedeemCollateral(ctx context.Context, party, asset string, amount *num.Uint) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), "dsc", "RedeemCollateral")
	defer func() { metrics.OperationCountInc("redeem_collateral", outcome(err)) }()

	if err = validAmount(amount); err != nil {
		return err
	}
	if err = e.validAsset(asset); err != nil {
		return err
	}
	if err = e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if err := e.ledger.RemoveCollateral(party, asset, amount); err != nil {
		return err
	}
	if err := e.checkHealth(party); err != nil {
		e.ledger.AddCollateral(party, asset, amount)
		return err
	}
	if err := e.custody.Transfer(party, asset, amount); err != nil {
		e.ledger.AddCollateral(party, asset, amount)
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	e.broker.Send(events.NewCollateralRedeemedEvent(ctx, party, party, asset, amount))
	return nil
}

// BurnDsc repays part of the party's debt: the tokens are collected from
// the party and destroyed. Burning only ever improves health, the invariant
// is re-checked all the same.
func (e *Engine) BurnDsc(ctx context.Context, party string, amount *num.Uint) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), "dsc", "BurnDsc")
	defer func() { metrics.OperationCountInc("burn_dsc", outcome(err)) }()

	if err = validAmount(amount); err != nil {
		return err
	}
	if err = e.acquire(); err != nil {
		return err
	}
	defer e.release()

	return e.burnDsc(ctx, party, party, amount)
}

// burnDsc reduces onBehalf's debt, funded by payer's tokens. The two
// differ during liquidation.
func (e *Engine) burnDsc(ctx context.Context, onBehalf, payer string, amount *num.Uint) error {
	if err := e.ledger.RemoveDebt(onBehalf, amount); err != nil {
		return err
	}
	if err := e.checkHealth(onBehalf); err != nil {
		e.ledger.AddDebt(onBehalf, amount)
		return err
	}
	if err := e.dsc.TransferFrom(payer, amount); err != nil {
		e.ledger.AddDebt(onBehalf, amount)
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	e.burnCollected(amount)
	e.broker.Send(events.NewDebtBurnedEvent(ctx, onBehalf, payer, amount))
	return nil
}

// burnCollected destroys tokens already collected by the engine. A failure
// here means the token collaborator is broken in a way no rollback can
// reconcile, the engine cannot continue.
func (e *Engine) burnCollected(amount *num.Uint) {
	if err := e.dsc.Burn(amount); err != nil {
		e.log.Panic("could not burn collected tokens",
			logging.BigUint("amount", amount),
			logging.Error(err),
		)
	}
}

// RedeemCollateralForDsc burns debt and redeems collateral for the same
// party as one operation.
func (e *Engine) RedeemCollateralForDsc(ctx context.Context, party, asset string, amount, burnAmount *num.Uint) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), "dsc", "RedeemCollateralForDsc")
	defer func() { metrics.OperationCountInc("redeem_collateral_for_dsc", outcome(err)) }()

	if err = validAmount(amount); err != nil {
		return err
	}
	if err = validAmount(burnAmount); err != nil {
		return err
	}
	if err = e.validAsset(asset); err != nil {
		return err
	}
	if err = e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if err := e.ledger.RemoveDebt(party, burnAmount); err != nil {
		return err
	}
	if err := e.ledger.RemoveCollateral(party, asset, amount); err != nil {
		e.ledger.AddDebt(party, burnAmount)
		return err
	}
	rollback := func() {
		e.ledger.AddCollateral(party, asset, amount)
		e.ledger.AddDebt(party, burnAmount)
	}
	if err := e.checkHealth(party); err != nil {
		rollback()
		return err
	}
	if err := e.custody.Transfer(party, asset, amount); err != nil {
		rollback()
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	if err := e.dsc.TransferFrom(party, burnAmount); err != nil {
		// take the released collateral back before rolling the ledger back
		if cerr := e.custody.TransferFrom(party, asset, amount); cerr != nil {
			e.log.Panic("could not reclaim collateral after failed debt collection",
				logging.PartyID(party),
				logging.AssetID(asset),
				logging.Error(cerr),
			)
		}
		rollback()
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	e.burnCollected(burnAmount)
	e.broker.SendBatch([]events.Event{
		events.NewDebtBurnedEvent(ctx, party, party, burnAmount),
		events.NewCollateralRedeemedEvent(ctx, party, party, asset, amount),
	})
	return nil
}

// checkHealth recomputes the party's health factor against the latest feed
// prices and fails when it is below the minimum.
func (e *Engine) checkHealth(party string) error {
	hf, err := e.healthFactor(party)
	if err != nil {
		return err
	}
	if !risk.Healthy(hf) {
		return BreachedHealthFactorError{HealthFactor: hf}
	}
	return nil
}

func (e *Engine) healthFactor(party string) (*num.Uint, error) {
	debt, collateralUSD, err := e.accountInformation(party)
	if err != nil {
		return nil, err
	}
	return risk.HealthFactor(debt, collateralUSD), nil
}

func (e *Engine) accountInformation(party string) (*num.Uint, *num.Uint, error) {
	debt := e.ledger.Debt(party)
	collateralUSD := num.UintZero()
	for _, asset := range e.oracle.Assets() {
		amount := e.ledger.CollateralAmount(party, asset)
		if amount.IsZero() {
			continue
		}
		v, err := e.oracle.UsdValue(asset, amount)
		if err != nil {
			return nil, nil, err
		}
		collateralUSD.Add(collateralUSD, v)
	}
	return debt, collateralUSD, nil
}

// AccountInformation returns the party's outstanding debt and the USD value
// of all their collateral at the latest feed prices.
func (e *Engine) AccountInformation(party string) (*num.Uint, *num.Uint, error) {
	return e.accountInformation(party)
}

// UserHealthFactor returns the party's current health factor.
func (e *Engine) UserHealthFactor(party string) (*num.Uint, error) {
	return e.healthFactor(party)
}

// UsdValue converts an asset amount to its USD value at the latest price.
func (e *Engine) UsdValue(asset string, amount *num.Uint) (*num.Uint, error) {
	return e.oracle.UsdValue(asset, amount)
}

// TokenAmountFromUsd converts a USD value to the equivalent asset amount at
// the latest price.
func (e *Engine) TokenAmountFromUsd(asset string, usd *num.Uint) (*num.Uint, error) {
	return e.oracle.AmountFromUsd(asset, usd)
}

// CollateralTokenAmount returns the party's deposited amount for the asset.
func (e *Engine) CollateralTokenAmount(party, asset string) *num.Uint {
	return e.ledger.CollateralAmount(party, asset)
}

// DscMinted returns the party's outstanding debt.
func (e *Engine) DscMinted(party string) *num.Uint {
	return e.ledger.Debt(party)
}

// CollateralAssets returns the allow-listed collateral assets.
func (e *Engine) CollateralAssets() []string {
	return e.oracle.Assets()
}

// CalculateHealthFactor is the pure what-if calculator, it does not touch
// engine state.
func (e *Engine) CalculateHealthFactor(debt, collateralUSD *num.Uint) *num.Uint {
	return risk.HealthFactor(debt, collateralUSD)
}
