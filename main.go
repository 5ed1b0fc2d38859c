// Package main provides the entry point for minibuf.
// minibuf streams word accesses through block buffered channels.
//
// For the copy tool, use: go run ./cmd/blockcopy
package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/minibuf/blockbuf"
)

func main() {
	fmt.Println("minibuf - block buffered word channels")
	fmt.Printf("Default block: %d bytes\n", blockbuf.DefaultBlockBytes)
	fmt.Println("")
	fmt.Println("Usage: blockcopy [options] <in> <out>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to block configuration JSON file")
	fmt.Println("  -words     Number of words to write")
	fmt.Println("  -storage   Stage the output in simulated memory")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/blockcopy' for the copy tool.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/blockcopy' instead.")
	}
}
