package main

import (
	"fmt"
	"os"
)

// main is the entry point of the application.
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
