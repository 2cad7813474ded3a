// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTablesBatchRunsEveryPageIndependently(t *testing.T) {
	pages := []*StructuredPage{
		buildPureGridPage(),
		buildSingleParagraphPage(),
		buildPureGridPage(),
	}

	err := DetectTablesBatch(pages, DefaultConfig(), 2)
	require.NoError(t, err)

	assert.Len(t, pages[0].Blocks, 1, "first grid page should collapse to one table")
	assert.Equal(t, RoleTable, pages[0].Blocks[0].Role)

	assert.Len(t, pages[1].Blocks, 1, "paragraph page should be left alone")
	assert.Equal(t, BlockText, pages[1].Blocks[0].Kind)

	assert.Len(t, pages[2].Blocks, 1, "second grid page should collapse to one table")
	assert.Equal(t, RoleTable, pages[2].Blocks[0].Role)
}

func TestDetectTablesBatchPropagatesError(t *testing.T) {
	pages := []*StructuredPage{buildPureGridPage()}
	tinyCfg := DefaultConfig()
	tinyCfg.MaxGridPositionsPerAxis = 3

	err := DetectTablesBatch(pages, tinyCfg, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGridTooLarge)
}
