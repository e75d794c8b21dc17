// Command denticore validates and repairs dental restoration treatment
// plans against the shade catalog and the built-in protocol rules.
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
