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

package oracles_test

import (
	"testing"

	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/oracles"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/logging"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	price *num.Uint
	err   error
}

func (s *stubFeed) LatestPrice() (*num.Uint, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.price.Clone(), nil
}

// feedPrice quotes usd at the 8 decimal feed precision.
func feedPrice(usd uint64) *stubFeed {
	p := num.UintZero().Mul(num.NewUint(usd), num.NewUint(100000000))
	return &stubFeed{price: p}
}

func getTestAdapter(t *testing.T, assets []string, feeds []oracles.PriceFeed) *oracles.Adapter {
	t.Helper()
	a, err := oracles.NewAdapter(logging.NewTestLogger(), oracles.NewDefaultConfig(), assets, feeds)
	require.NoError(t, err)
	return a
}

func TestAdapterConstruction(t *testing.T) {
	t.Run("asset and feed lists must pair up", func(t *testing.T) {
		_, err := oracles.NewAdapter(
			logging.NewTestLogger(), oracles.NewDefaultConfig(),
			[]string{"WETH", "WBTC"},
			[]oracles.PriceFeed{feedPrice(2000)},
		)
		assert.ErrorIs(t, err, oracles.ErrAssetsAndFeedsMismatch)
	})

	t.Run("nil feed is rejected", func(t *testing.T) {
		_, err := oracles.NewAdapter(
			logging.NewTestLogger(), oracles.NewDefaultConfig(),
			[]string{"WETH"},
			[]oracles.PriceFeed{nil},
		)
		assert.ErrorIs(t, err, oracles.ErrNilPriceFeed)
	})

	t.Run("assets keep construction order", func(t *testing.T) {
		a := getTestAdapter(t,
			[]string{"WETH", "WBTC"},
			[]oracles.PriceFeed{feedPrice(2000), feedPrice(1000)},
		)
		assert.Equal(t, []string{"WETH", "WBTC"}, a.Assets())
		assert.True(t, a.IsSupported("WBTC"))
		assert.False(t, a.IsSupported("DOGE"))
	})
}

func TestUsdValue(t *testing.T) {
	a := getTestAdapter(t, []string{"WETH"}, []oracles.PriceFeed{feedPrice(2000)})

	t.Run("whole amounts", func(t *testing.T) {
		// 10 WETH at 2000 USD/WETH -> 20000 USD
		v, err := a.UsdValue("WETH", num.MustUintFromString("10000000000000000000"))
		require.NoError(t, err)
		assert.Equal(t, "20000000000000000000000", v.String())
	})

	t.Run("fractional amounts", func(t *testing.T) {
		// 0.05 WETH -> 100 USD
		v, err := a.UsdValue("WETH", num.MustUintFromString("50000000000000000"))
		require.NoError(t, err)
		assert.Equal(t, "100000000000000000000", v.String())
	})

	t.Run("unsupported asset", func(t *testing.T) {
		_, err := a.UsdValue("DOGE", num.NewUint(1))
		assert.ErrorIs(t, err, oracles.ErrAssetNotSupported)
	})
}

func TestAmountFromUsd(t *testing.T) {
	a := getTestAdapter(t, []string{"WETH"}, []oracles.PriceFeed{feedPrice(2000)})

	t.Run("round trip", func(t *testing.T) {
		// 100 USD at 2000 USD/WETH -> 0.05 WETH
		v, err := a.AmountFromUsd("WETH", num.MustUintFromString("100000000000000000000"))
		require.NoError(t, err)
		assert.Equal(t, "50000000000000000", v.String())
	})

	t.Run("division truncates", func(t *testing.T) {
		// 1 wei of USD buys no WETH at all
		v, err := a.AmountFromUsd("WETH", num.NewUint(1))
		require.NoError(t, err)
		assert.True(t, v.IsZero())
	})
}

func TestFeedErrorsPropagate(t *testing.T) {
	feedErr := errors.New("stale round")
	a := getTestAdapter(t, []string{"WETH"}, []oracles.PriceFeed{&stubFeed{err: feedErr}})

	_, err := a.UsdValue("WETH", num.NewUint(1))
	assert.ErrorIs(t, err, feedErr)

	_, err = a.AmountFromUsd("WETH", num.NewUint(1))
	assert.ErrorIs(t, err, feedErr)
}
