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

package oracles

import (
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/risk"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/libs/num"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/logging"

	"github.com/pkg/errors"
)

var (
	// ErrAssetsAndFeedsMismatch is returned at construction when the asset
	// list and the price feed list do not pair up one to one.
	ErrAssetsAndFeedsMismatch = errors.New("asset and price feed lists must be the same length")
	// ErrNilPriceFeed is returned at construction when an asset is bound to
	// a nil feed.
	ErrNilPriceFeed = errors.New("asset bound to a nil price feed")
	// ErrAssetNotSupported is returned when an asset has no bound price
	// feed, which makes it ineligible as collateral.
	ErrAssetNotSupported = errors.New("asset is not an allowed collateral type")
)

// PriceFeed is the boundary to the external price oracle. A feed quotes the
// latest asset/USD price at the feed precision (8 decimals). The adapter
// always asks for the latest value and trusts it, no staleness check and no
// caching happen here.
type PriceFeed interface {
	LatestPrice() (*num.Uint, error)
}

// additionalFeedPrecision normalizes a feed quote (8 decimals) to the
// engine's internal 18-decimal scale: 1e8 * 1e10 = 1e18.
var additionalFeedPrecision = num.MustUintFromString("10000000000")

// Adapter converts asset amounts to their USD value and back using the
// price feed bound to each supported asset. The binding is fixed at
// construction, assets cannot be added afterwards.
type Adapter struct {
	Config
	log *logging.Logger

	// assets in construction order, used for deterministic iteration
	assets []string
	feeds  map[string]PriceFeed
}

// NewAdapter binds each asset to its price feed. The two lists must pair up
// one to one, a mismatch is a construction failure.
func NewAdapter(log *logging.Logger, cfg Config, assets []string, feeds []PriceFeed) (*Adapter, error) {
	if len(assets) != len(feeds) {
		return nil, ErrAssetsAndFeedsMismatch
	}

	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	a := &Adapter{
		Config: cfg,
		log:    log,
		assets: make([]string, 0, len(assets)),
		feeds:  make(map[string]PriceFeed, len(assets)),
	}
	for i, asset := range assets {
		if feeds[i] == nil {
			return nil, errors.Wrap(ErrNilPriceFeed, asset)
		}
		a.assets = append(a.assets, asset)
		a.feeds[asset] = feeds[i]
	}
	return a, nil
}

// ReloadConf update the internal configuration of the adapter.
func (a *Adapter) ReloadConf(cfg Config) {
	a.log.Info("reloading configuration")
	if a.log.GetLevel() != cfg.Level.Get() {
		a.log.Info("updating log level",
			logging.String("old", a.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		a.log.SetLevel(cfg.Level.Get())
	}

	a.Config = cfg
}

// Assets returns the allow-listed collateral assets in construction order.
func (a *Adapter) Assets() []string {
	out := make([]string, len(a.assets))
	copy(out, a.assets)
	return out
}

// IsSupported reports whether the asset has a bound price feed.
func (a *Adapter) IsSupported(asset string) bool {
	_, ok := a.feeds[asset]
	return ok
}

// UsdValue converts an asset amount (18 decimals) into its USD value
// (18 decimals) at the latest feed price:
//
//	(price * 1e10) * amount / 1e18
func (a *Adapter) UsdValue(asset string, amount *num.Uint) (*num.Uint, error) {
	price, err := a.latestPrice(asset)
	if err != nil {
		return nil, err
	}
	v := num.UintZero().Mul(price, additionalFeedPrecision)
	v.Mul(v, amount)
	return v.Div(v, risk.Precision), nil
}

// AmountFromUsd converts a USD value (18 decimals) into the equivalent
// asset amount (18 decimals) at the latest feed price:
//
//	usd * 1e18 / (price * 1e10)
//
// This is the multiplicative inverse of UsdValue under truncating division,
// so UsdValue(AmountFromUsd(x)) can be up to one rounding unit below x.
func (a *Adapter) AmountFromUsd(asset string, usd *num.Uint) (*num.Uint, error) {
	price, err := a.latestPrice(asset)
	if err != nil {
		return nil, err
	}
	v := num.UintZero().Mul(usd, risk.Precision)
	scaled := num.UintZero().Mul(price, additionalFeedPrecision)
	return v.Div(v, scaled), nil
}

func (a *Adapter) latestPrice(asset string) (*num.Uint, error) {
	feed, ok := a.feeds[asset]
	if !ok {
		return nil, ErrAssetNotSupported
	}
	price, err := feed.LatestPrice()
	if err != nil {
		return nil, errors.Wrap(err, "price feed")
	}
	if a.log.GetLevel() == logging.DebugLevel {
		a.log.Debug("latest feed price",
			logging.AssetID(asset),
			logging.BigUint("price", price),
		)
	}
	return price, nil
}
