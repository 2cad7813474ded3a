// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/geekdoc/pdftable/tabledetect"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	out := flag.String("out", "-", "output path, or - for stdout")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: tabledetect [options] page.json")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := tabledetect.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	page, err := readPage(flag.Arg(0))
	if err != nil {
		log.Fatalf("read page: %v", err)
	}

	if err := tabledetect.DetectTablesWithConfig(page, cfg); err != nil {
		log.Fatalf("detect tables: %v", err)
	}

	if err := writePage(*out, page); err != nil {
		log.Fatalf("write page: %v", err)
	}
}

func readPage(path string) (*tabledetect.StructuredPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	page := &tabledetect.StructuredPage{}
	if err := json.Unmarshal(data, page); err != nil {
		return nil, err
	}
	return page, nil
}

func writePage(path string, page *tabledetect.StructuredPage) error {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
