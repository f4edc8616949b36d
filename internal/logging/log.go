// Package logging configures "github.com/op/go-logging" backends for the
// engine/search/policy loggers, one getter per concern so callers never
// touch go-logging setup directly.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"
)

var (
	engineLog *logging.Logger
	searchLog *logging.Logger
	policyLog *logging.Logger

	format = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
	)

	level = logging.INFO
)

func init() {
	engineLog = logging.MustGetLogger("engine")
	searchLog = logging.MustGetLogger("search")
	policyLog = logging.MustGetLogger("policy")
}

func backend() logging.Backend {
	raw := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(raw, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	return leveled
}

// SetLevel adjusts the level applied to loggers returned afterward.
func SetLevel(l logging.Level) {
	level = l
}

// Engine returns the façade/difficulty-preset logger.
func Engine() *logging.Logger {
	engineLog.SetBackend(backend())
	return engineLog
}

// Search returns the search-core logger. Nothing in the search package logs
// through it, so the per-node negamax loop never logs; root decisions are
// logged at Info by the façade through Engine().
func Search() *logging.Logger {
	searchLog.SetBackend(backend())
	return searchLog
}

// Policy returns the root-policy-layer logger.
func Policy() *logging.Logger {
	policyLog.SetBackend(backend())
	return policyLog
}
