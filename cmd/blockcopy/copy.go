package main

import (
	"encoding/binary"
	"errors"
	"log"

	"github.com/sarchlab/akita/v4/mem/mem"

	"github.com/sarchlab/minibuf/blockbuf"
)

const wordBytes = 8

// copyResult holds the copied bytes and what the channels did to move them.
type copyResult struct {
	Data  []byte
	Read  blockbuf.Statistics
	Write blockbuf.Statistics
	Err   error
}

// blockCopy streams input as little-endian 64-bit words from a read channel
// into a write channel bounded to limit words. A limit of 0 or one larger
// than the input means the whole input. Words past the limit are dropped by
// the write channel. When staged is set the words land in simulated memory
// first and are streamed back out of it.
func blockCopy(
	input []byte,
	limit uint64,
	config *blockbuf.Config,
	staged bool,
	logger *log.Logger,
) copyResult {
	padded := make([]byte, roundUp(uint64(len(input)), wordBytes))
	copy(padded, input)

	src := blockbuf.NewByteRegion[uint64](padded, binary.LittleEndian)
	total := src.Words()
	if limit == 0 || limit > total {
		limit = total
	}

	out := make([]byte, limit*wordBytes)
	outRegion := blockbuf.NewByteRegion[uint64](out, binary.LittleEndian)

	reader := newChannel(config, logger)
	writer := newChannel(config, logger)
	reader.InitForRead(src, total)

	var dst blockbuf.Region[uint64] = outRegion
	if staged {
		storage := mem.NewStorage(roundUp(limit*wordBytes+1, 4096))
		dst = blockbuf.NewStorageRegion[uint64](storage, 0)
	}

	writer.InitForWrite(dst, limit)
	pump(reader, writer, total)
	writer.Flush()

	result := copyResult{
		Read:  reader.Stats(),
		Write: writer.Stats(),
		Err:   errors.Join(reader.Err(), writer.Err()),
	}

	if staged {
		unstage := newChannel(config, logger)
		drain := newChannel(config, logger)
		unstage.InitForRead(dst, limit)
		drain.InitForWrite(outRegion, limit)
		pump(unstage, drain, limit)
		drain.Flush()
	}

	size := min(uint64(len(input)), limit*wordBytes)
	result.Data = out[:size]

	return result
}

func newChannel(config *blockbuf.Config, logger *log.Logger) *blockbuf.Channel[uint64] {
	c := blockbuf.NewChannel[uint64](blockbuf.WithConfig(config))
	if logger != nil {
		c.AcceptHook(blockbuf.NewTransferLogger(logger))
	}
	return c
}

// pump moves n words from one channel to the other.
func pump(from, to *blockbuf.Channel[uint64], n uint64) {
	for i := uint64(0); i < n; i++ {
		to.Put(from.Get())
	}
}

func roundUp(n, align uint64) uint64 {
	return (n + align - 1) / align * align
}
