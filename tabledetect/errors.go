// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import (
	"errors"
	"fmt"
)

// Error represents an error that occurred while running the detection
// pipeline, mirroring the teacher library's own PDFError: a short stage
// label plus the underlying cause.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tabledetect: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrGridTooLarge is returned when divider inference produces more grid
// positions on one axis than Config.MaxGridPositionsPerAxis allows. This
// is the engine's stand-in for the abstract "allocation failure" error
// kind: the page is left unmodified.
var ErrGridTooLarge = errors.New("grid position count exceeds configured maximum")

func wrapStageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Stage: stage, Err: err}
}
