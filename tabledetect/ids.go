// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabledetect

import "github.com/google/uuid"

// stampID assigns a fresh identifier to a Struct/Grid block so a host
// tree-diff or incremental-reprocessing layer can refer to a detected
// table, row, or cell stably across runs.
func stampID(b *Block) *Block {
	b.ID = uuid.NewString()
	return b
}
