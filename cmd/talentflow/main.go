// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command talentflow runs the TalentFlow generation flows from the command line or as an HTTP
// server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
