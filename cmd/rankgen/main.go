// Command rankgen generates, compares and re-ranks numeric rankings.
//
// Usage:
//
//	go run ./cmd/rankgen generate --size 5
//	go run ./cmd/rankgen search --values "0.2 0.3 0.5"
//	go run ./cmd/rankgen serve
package main

import (
	"os"

	"github.com/tensorplex-labs/rankgen/cmd/rankgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
