// Command portfolioctl inspects the project catalog, sends contact
// submissions and manages the inbox from a terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
