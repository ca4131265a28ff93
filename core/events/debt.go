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

package events

import (
	"context"

	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"
)

// DebtMinted is raised when a party mints synthetic-dollar debt.
type DebtMinted struct {
	*Base
	party  string
	amount *num.Uint
}

func NewDebtMintedEvent(ctx context.Context, party string, amount *num.Uint) *DebtMinted {
	return &DebtMinted{
		Base:   newBase(ctx, DebtMintedEvent),
		party:  party,
		amount: amount.Clone(),
	}
}

func (d DebtMinted) PartyID() string { return d.party }

func (d DebtMinted) Amount() *num.Uint { return d.amount.Clone() }

func (d DebtMinted) IsParty(id string) bool {
	return d.party == id
}

// DebtBurned is raised when outstanding debt is repaid and destroyed. The
// payer differs from the position owner when a liquidator covers the debt.
type DebtBurned struct {
	*Base
	party  string
	payer  string
	amount *num.Uint
}

func NewDebtBurnedEvent(ctx context.Context, party, payer string, amount *num.Uint) *DebtBurned {
	return &DebtBurned{
		Base:   newBase(ctx, DebtBurnedEvent),
		party:  party,
		payer:  payer,
		amount: amount.Clone(),
	}
}

func (d DebtBurned) PartyID() string { return d.party }

func (d DebtBurned) Payer() string { return d.payer }

func (d DebtBurned) Amount() *num.Uint { return d.amount.Clone() }

func (d DebtBurned) IsParty(id string) bool {
	return d.party == id || d.payer == id
}

// PositionLiquidated is raised once a liquidation completed, with the
// health factor of the target before and after the trade.
type PositionLiquidated struct {
	*Base
	target     string
	liquidator string
	asset      string
	debtCover  *num.Uint
	seized     *num.Uint
	hfBefore   *num.Uint
	hfAfter    *num.Uint
}

func NewPositionLiquidatedEvent(ctx context.Context, target, liquidator, asset string, debtCover, seized, hfBefore, hfAfter *num.Uint) *PositionLiquidated {
	return &PositionLiquidated{
		Base:       newBase(ctx, PositionLiquidatedEvent),
		target:     target,
		liquidator: liquidator,
		asset:      asset,
		debtCover:  debtCover.Clone(),
		seized:     seized.Clone(),
		hfBefore:   hfBefore.Clone(),
		hfAfter:    hfAfter.Clone(),
	}
}

func (p PositionLiquidated) PartyID() string { return p.target }

func (p PositionLiquidated) Liquidator() string { return p.liquidator }

func (p PositionLiquidated) Asset() string { return p.asset }

func (p PositionLiquidated) DebtCovered() *num.Uint { return p.debtCover.Clone() }

func (p PositionLiquidated) CollateralSeized() *num.Uint { return p.seized.Clone() }

func (p PositionLiquidated) HealthFactorBefore() *num.Uint { return p.hfBefore.Clone() }

func (p PositionLiquidated) HealthFactorAfter() *num.Uint { return p.hfAfter.Clone() }

func (p PositionLiquidated) IsParty(id string) bool {
	return p.target == id || p.liquidator == id
}
