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
	"time"

	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/events"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/risk"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/logging"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/metrics"

	"github.com/pkg/errors"
)

// Liquidate lets any party repay part of an unhealthy target's debt in
// exchange for an equivalent amount of the target's collateral plus a flat
// 10% bonus. The target's health factor must strictly improve, and the
// liquidator's own position must still meet the minimum afterwards.
//
// Known limitation, kept on purpose: if aggregate collateral across the
// whole system falls to or below 100% of aggregate debt before anyone
// liquidates, the bonus cannot be funded and positions near that point
// cannot be profitably liquidated.
func (e *Engine) Liquidate(ctx context.Context, liquidator, asset, target string, debtToCover *num.Uint) (err error) {
	defer metrics.EngineTimeCounterAdd(time.Now(), "dsc", "Liquidate")
	defer func() { metrics.OperationCountInc("liquidate", outcome(err)) }()

	if err = validAmount(debtToCover); err != nil {
		return err
	}
	if err = e.validAsset(asset); err != nil {
		return err
	}
	if err = e.acquire(); err != nil {
		return err
	}
	defer e.release()

	debt, collateralUSD, err := e.accountInformation(target)
	if err != nil {
		return err
	}
	startingHF := risk.HealthFactor(debt, collateralUSD)
	if risk.Healthy(startingHF) {
		return ErrHealthFactorOK
	}
	if e.log.GetLevel() == logging.DebugLevel {
		e.log.Debug("liquidation requested",
			logging.PartyID(target),
			logging.String("liquidator", liquidator),
			logging.BigUint("health-factor", startingHF),
			logging.Decimal("collateralization", risk.CollateralizationRatio(debt, collateralUSD)),
		)
	}

	// debt covered, converted into the seized collateral asset, plus the
	// flat incentive on top
	base, err := e.oracle.AmountFromUsd(asset, debtToCover)
	if err != nil {
		return err
	}
	bonus := num.UintZero().Mul(base, num.NewUint(risk.LiquidationBonus))
	bonus.Div(bonus, num.NewUint(risk.LiquidationPrecision))
	seized := num.UintZero().Add(base, bonus)

	if err := e.ledger.RemoveCollateral(target, asset, seized); err != nil {
		return err
	}
	if err := e.ledger.RemoveDebt(target, debtToCover); err != nil {
		e.ledger.AddCollateral(target, asset, seized)
		return err
	}
	rollback := func() {
		e.ledger.AddDebt(target, debtToCover)
		e.ledger.AddCollateral(target, asset, seized)
	}

	endingHF, err := e.healthFactor(target)
	if err != nil {
		rollback()
		return err
	}
	if endingHF.LTE(startingHF) {
		rollback()
		return ErrHealthFactorNotImproved
	}

	// the liquidator may hold a position of their own, the invariant
	// applies to them too
	if err := e.checkHealth(liquidator); err != nil {
		rollback()
		return err
	}

	// move the seized collateral out of custody to the liquidator
	if err := e.custody.Transfer(liquidator, asset, seized); err != nil {
		rollback()
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	// collect the repaid debt from the liquidator and destroy it
	if err := e.dsc.TransferFrom(liquidator, debtToCover); err != nil {
		if cerr := e.custody.TransferFrom(liquidator, asset, seized); cerr != nil {
			e.log.Panic("could not reclaim seized collateral after failed debt collection",
				logging.PartyID(liquidator),
				logging.AssetID(asset),
				logging.Error(cerr),
			)
		}
		rollback()
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	e.burnCollected(debtToCover)

	e.broker.SendBatch([]events.Event{
		events.NewCollateralRedeemedEvent(ctx, target, liquidator, asset, seized),
		events.NewDebtBurnedEvent(ctx, target, liquidator, debtToCover),
		events.NewPositionLiquidatedEvent(ctx, target, liquidator, asset, debtToCover, seized, startingHF, endingHF),
	})
	metrics.LiquidationCountInc()

	if e.log.GetLevel() == logging.DebugLevel {
		e.log.Debug("position liquidated",
			logging.PartyID(target),
			logging.String("liquidator", liquidator),
			logging.BigUint("debt-covered", debtToCover),
			logging.BigUint("collateral-seized", seized),
			logging.BigUint("health-before", startingHF),
			logging.BigUint("health-after", endingHF),
		)
	}
	return nil
}
