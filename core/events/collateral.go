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

// CollateralDeposited is raised when a party adds collateral to their
// position.
type CollateralDeposited struct {
	*Base
	party  string
	asset  string
	amount *num.Uint
}

func NewCollateralDepositedEvent(ctx context.Context, party, asset string, amount *num.Uint) *CollateralDeposited {
	return &CollateralDeposited{
		Base:   newBase(ctx, CollateralDepositedEvent),
		party:  party,
		asset:  asset,
		amount: amount.Clone(),
	}
}

func (c CollateralDeposited) PartyID() string { return c.party }

func (c CollateralDeposited) Asset() string { return c.asset }

func (c CollateralDeposited) Amount() *num.Uint { return c.amount.Clone() }

func (c CollateralDeposited) IsParty(id string) bool {
	return c.party == id
}

// CollateralRedeemed is raised when collateral leaves a party's position.
// The recipient differs from the position owner when the redemption is a
// liquidation seizure.
type CollateralRedeemed struct {
	*Base
	from   string
	to     string
	asset  string
	amount *num.Uint
}

func NewCollateralRedeemedEvent(ctx context.Context, from, to, asset string, amount *num.Uint) *CollateralRedeemed {
	return &CollateralRedeemed{
		Base:   newBase(ctx, CollateralRedeemedEvent),
		from:   from,
		to:     to,
		asset:  asset,
		amount: amount.Clone(),
	}
}

func (c CollateralRedeemed) From() string { return c.from }

func (c CollateralRedeemed) To() string { return c.to }

func (c CollateralRedeemed) Asset() string { return c.asset }

func (c CollateralRedeemed) Amount() *num.Uint { return c.amount.Clone() }

func (c CollateralRedeemed) PartyID() string { return c.from }

func (c CollateralRedeemed) IsParty(id string) bool {
	return c.from == id || c.to == id
}
