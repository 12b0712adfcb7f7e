// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command boardsim runs board scripts and inspects board snapshots.
//
//	boardsim run [--config FILE] [--load SNAPSHOT] [--save FILE] [--metrics] SCRIPT
//	boardsim show SNAPSHOT
//	boardsim export-url SNAPSHOT
//	boardsim import-url [--out FILE] TOKEN
//	boardsim gates
//
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
