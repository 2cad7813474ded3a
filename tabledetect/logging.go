// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import (
	"os"

	"github.com/rs/zerolog"
)

// log is the package-level logger for pipeline-stage diagnostics. Level
// defaults to Info; Config.Debug lowers it to Debug, which adds the
// pipeline's "no table" stage-boundary messages.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)

// setDebug raises or lowers log's level according to cfg.Debug. Called once
// per DetectTablesWithConfig invocation, so concurrent callers in
// DetectTablesBatch with differing Config.Debug values race on the shared
// logger's level the same way they would race on any other process-wide
// logging sink.
func setDebug(debug bool) {
	if debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}
}
