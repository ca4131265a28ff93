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

package risk_test

import (
	"testing"

	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/risk"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"

	"github.com/stretchr/testify/assert"
)

func TestHealthFactor(t *testing.T) {
	t.Run("no debt means maximum health", testHealthFactorNoDebt)
	t.Run("exactly at the minimum", testHealthFactorAtMinimum)
	t.Run("above the minimum", testHealthFactorAboveMinimum)
	t.Run("below the minimum", testHealthFactorBelowMinimum)
	t.Run("division truncates", testHealthFactorTruncates)
	t.Run("inputs are not mutated", testHealthFactorPure)
	t.Run("collateralization ratio", testCollateralizationRatio)
}

func testHealthFactorNoDebt(t *testing.T) {
	hf := risk.HealthFactor(num.UintZero(), num.MustUintFromString("20000000000000000000000"))
	assert.True(t, hf.EQ(num.MaxUint()))
	assert.True(t, risk.Healthy(hf))

	// no debt and no collateral is healthy too
	hf = risk.HealthFactor(num.UintZero(), num.UintZero())
	assert.True(t, hf.EQ(num.MaxUint()))
}

func testHealthFactorAtMinimum(t *testing.T) {
	// 200 USD collateral backing 100 DSC is exactly 200% collateralized
	debt := num.MustUintFromString("100000000000000000000")
	collateral := num.MustUintFromString("200000000000000000000")

	hf := risk.HealthFactor(debt, collateral)
	assert.True(t, hf.EQ(risk.MinHealthFactor), hf.String())
	assert.True(t, risk.Healthy(hf))
}

func testHealthFactorAboveMinimum(t *testing.T) {
	// 20000 USD collateral backing 100 DSC -> health factor 100.0
	debt := num.MustUintFromString("100000000000000000000")
	collateral := num.MustUintFromString("20000000000000000000000")

	hf := risk.HealthFactor(debt, collateral)
	assert.Equal(t, "100000000000000000000", hf.String())
	assert.True(t, risk.Healthy(hf))
}

func testHealthFactorBelowMinimum(t *testing.T) {
	// 100 USD collateral backing 100 DSC -> health factor 0.5
	debt := num.MustUintFromString("100000000000000000000")
	collateral := num.MustUintFromString("100000000000000000000")

	hf := risk.HealthFactor(debt, collateral)
	assert.Equal(t, "500000000000000000", hf.String())
	assert.False(t, risk.Healthy(hf))
}

func testHealthFactorTruncates(t *testing.T) {
	// 3 wei of collateral, threshold-adjusted to 1 (3*50/100 truncated)
	hf := risk.HealthFactor(num.NewUint(2), num.NewUint(3))
	assert.Equal(t, "500000000000000000", hf.String())
}

func testCollateralizationRatio(t *testing.T) {
	debt := num.MustUintFromString("100000000000000000000")
	collateral := num.MustUintFromString("180000000000000000000")

	ratio := risk.CollateralizationRatio(debt, collateral)
	assert.Equal(t, "1.8", ratio.String())

	ratio = risk.CollateralizationRatio(num.UintZero(), collateral)
	assert.True(t, ratio.Equal(num.MaxDecimal()))
}

func testHealthFactorPure(t *testing.T) {
	debt := num.NewUint(100)
	collateral := num.NewUint(300)

	_ = risk.HealthFactor(debt, collateral)

	assert.Equal(t, uint64(100), debt.Uint64())
	assert.Equal(t, uint64(300), collateral.Uint64())
}
