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

package risk

import (
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"
)

// Protocol risk parameters. All USD and debt amounts are expressed at an
// 18-decimal fixed-point scale, and health factors at the same scale, so a
// health factor of exactly 1e18 means 100% of the liquidation threshold.
const (
	// LiquidationThreshold is the percentage of collateral value counted
	// towards the safety margin. 50 means a position must be 200%
	// overcollateralized to sit exactly at the minimum health factor.
	LiquidationThreshold uint64 = 50
	// LiquidationBonus is the percentage of the seized collateral paid to
	// the liquidator on top of the debt-equivalent amount.
	LiquidationBonus uint64 = 10
	// LiquidationPrecision is the divisor for the two percentages above.
	LiquidationPrecision uint64 = 100
)

var (
	// Precision is the 18-decimal fixed-point scale, 1e18.
	Precision = num.MustUintFromString("1000000000000000000")
	// MinHealthFactor is the smallest health factor a position with debt
	// may have after any operation, 1.0 at the 1e18 scale.
	MinHealthFactor = num.MustUintFromString("1000000000000000000")

	liquidationThreshold = num.NewUint(LiquidationThreshold)
	liquidationPrecision = num.NewUint(LiquidationPrecision)
)

// HealthFactor returns how close to liquidation a position is. A position
// with no debt cannot be liquidated, so its health factor is the maximum
// representable value. Otherwise the collateral value is discounted by the
// liquidation threshold and divided by the debt:
//
//	(collateralUSD * 50 / 100) * 1e18 / debt
//
// All divisions truncate towards zero. The function is pure so callers can
// simulate the health of hypothetical positions before committing to a
// mutation.
func HealthFactor(debt, collateralUSD *num.Uint) *num.Uint {
	if debt.IsZero() {
		return num.MaxUint()
	}
	collateralAdjusted := num.UintZero().Mul(collateralUSD, liquidationThreshold)
	collateralAdjusted.Div(collateralAdjusted, liquidationPrecision)
	hf := num.UintZero().Mul(collateralAdjusted, Precision)
	return hf.Div(hf, debt)
}

// Healthy reports whether the given health factor meets the global solvency
// invariant.
func Healthy(hf *num.Uint) bool {
	return hf.GTE(MinHealthFactor)
}

// CollateralizationRatio returns collateral value over debt as a decimal, for
// telemetry only. Positions with no debt report the maximum.
func CollateralizationRatio(debt, collateralUSD *num.Uint) num.Decimal {
	if debt.IsZero() {
		return num.MaxDecimal()
	}
	return num.DecimalFromUint(collateralUSD).Div(num.DecimalFromUint(debt))
}
