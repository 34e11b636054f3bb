// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"github.com/ipfs/go-log"
)

// LoggerName is the go-log subsystem every package of this module logs under.
const LoggerName = "schnorr-id"

var Logger = log.Logger(LoggerName)

// SetLogLevel adjusts the verbosity of Logger, e.g. "debug", "info", "warn".
func SetLogLevel(level string) error {
	return log.SetLogLevel(LoggerName, level)
}
