// Command cityner detects departure and arrival cities in travel chat
// messages.
//
//	cityner detect "flights from bombay to delhi"
//	cityner detect --bot-message "What is your origin city?" pune
//	cityner batch messages.jsonl > results.jsonl
//	cityner cities bang
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
