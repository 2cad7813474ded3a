// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import "golang.org/x/sync/errgroup"

// DetectTablesBatch runs DetectTablesWithConfig over every page
// concurrently, one goroutine per page, bounded by maxWorkers (0 means
// unbounded). Pages are independent per the concurrency/resource model,
// so this is a thin fan-out harness around the single-page pipeline, not
// a change to it. The first error from any page is returned; the other
// pages still run to completion.
func DetectTablesBatch(pages []*StructuredPage, cfg *Config, maxWorkers int) error {
	var g errgroup.Group
	if maxWorkers > 0 {
		g.SetLimit(maxWorkers)
	}
	for _, page := range pages {
		page := page
		g.Go(func() error {
			return DetectTablesWithConfig(page, cfg)
		})
	}
	return g.Wait()
}
