// Package main provides blockcopy, which streams a file through block
// buffered channels.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/minibuf/blockbuf"
)

var (
	configPath = flag.String("config", "", "Path to block configuration JSON file")
	words      = flag.Uint64("words", 0, "Number of words to write (0 writes the whole input)")
	staged     = flag.Bool("storage", false, "Stage the output in simulated memory")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Usage: blockcopy [options] <in> <out>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	inPath, outPath := flag.Arg(0), flag.Arg(1)

	config := blockbuf.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = blockbuf.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading block config: %v\n", err)
			os.Exit(1)
		}
	}

	if err := blockbuf.ValidateFor[uint64](config); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid block config: %v\n", err)
		os.Exit(1)
	}

	input, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	var logger *log.Logger
	if *verbose || config.Trace {
		logger = log.New(os.Stderr, "blockcopy: ", 0)
	}

	result := blockCopy(input, *words, config, *staged, logger)

	if err := os.WriteFile(outPath, result.Data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	report(inPath, outPath, result)

	if result.Err != nil {
		fmt.Fprintf(os.Stderr, "Boundary violation: %v\n", result.Err)
		os.Exit(1)
	}
}

func report(inPath, outPath string, result copyResult) {
	fmt.Printf("Input:  %s\n", inPath)
	fmt.Printf("Output: %s (%d bytes)\n", outPath, len(result.Data))
	fmt.Printf("\n")
	fmt.Printf("Read channel:\n")
	fmt.Printf("  Gets:           %d\n", result.Read.Gets)
	fmt.Printf("  Fills:          %d (%.1f words/fill)\n",
		result.Read.Fills, result.Read.WordsPerFill())
	fmt.Printf("  Sentinel reads: %d\n", result.Read.SentinelReads)
	fmt.Printf("Write channel:\n")
	fmt.Printf("  Puts:           %d\n", result.Write.Puts)
	fmt.Printf("  Flushes:        %d (%.1f words/flush)\n",
		result.Write.Flushes, result.Write.WordsPerFlush())
	fmt.Printf("  Dropped words:  %d\n", result.Write.WordsDropped)
}
