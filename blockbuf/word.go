// Package blockbuf turns word-granularity reads and writes into fixed-size
// block transfers against a bounded linear region.
//
// A Channel buffers one block of words. In read mode it fills the block from
// the region in a single burst and hands the words out one by one. In write
// mode it gathers words until the block is full and then writes the whole
// block back. Accesses beyond the declared region length are not reported:
// reads return the all-ones sentinel word and writes are dropped.
package blockbuf

import "unsafe"

// Word is a fixed-width bus datum. The channel never interprets its value.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Sentinel returns the all-ones word that Get yields past the end of the
// region.
func Sentinel[W Word]() W {
	var zero W
	return ^zero
}

// WordBytes returns the width of W in bytes.
func WordBytes[W Word]() int {
	var zero W
	return int(unsafe.Sizeof(zero))
}
