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
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/config/encoding"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/collateral"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/core/oracles"
	"github.com/AAYUSH-GUPTA-coder/Stablecoin/logging"
)

const (
	// namedLogger is the identifier for package and should ideally match the package name
	// this is simply emitted as a hierarchical label e.g. 'api.grpc'.
	namedLogger = "dsc"
)

// Config is the configuration of the dsc engine and its nested engines.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	Collateral collateral.Config `group:"Collateral" namespace:"collateral"`
	Oracles    oracles.Config    `group:"Oracles"    namespace:"oracles"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:      encoding.LogLevel{Level: logging.InfoLevel},
		Collateral: collateral.NewDefaultConfig(),
		Oracles:    oracles.NewDefaultConfig(),
	}
}
