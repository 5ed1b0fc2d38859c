package blockbuf

import (
	"log"

	"github.com/sarchlab/akita/v4/sim"
)

// HookPosBlockFill marks a block read from the region into the buffer.
var HookPosBlockFill = &sim.HookPos{Name: "BlockFill"}

// HookPosBlockFlush marks buffered words written back to the region.
var HookPosBlockFlush = &sim.HookPos{Name: "BlockFlush"}

// HookPosWordsDropped marks buffered words discarded by a flush because the
// region had no room left for them.
var HookPosWordsDropped = &sim.HookPos{Name: "WordsDropped"}

// Transfer describes one block movement between the buffer and the region.
// It is the Item of every hook the channel invokes.
type Transfer struct {
	// Offset is the region word offset the transfer starts at.
	Offset uint64
	// Words is the number of words moved, or dropped for HookPosWordsDropped.
	Words uint64
	// Bytes is Words times the word width.
	Bytes uint64
	// Free is the number of region words still unwritten before a flush.
	// Zero for fills.
	Free uint64
	// BlockWords is the buffer capacity.
	BlockWords int
	// MaxWords is the declared region length.
	MaxWords uint64
}

// TransferLogger prints one line per block transfer.
type TransferLogger struct {
	*log.Logger
}

// NewTransferLogger creates a TransferLogger that writes to logger.
func NewTransferLogger(logger *log.Logger) *TransferLogger {
	return &TransferLogger{Logger: logger}
}

// Func logs the transfer carried by ctx.
func (l *TransferLogger) Func(ctx sim.HookCtx) {
	t, ok := ctx.Item.(Transfer)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosBlockFill:
		l.Printf("block buffer %d words, reading %d bytes at word %d",
			t.Words, t.Bytes, t.Offset)
	case HookPosBlockFlush:
		l.Printf("block buffer %d words, writing %d bytes at word %d "+
			"free: %d bmax: %d mmax: %d",
			t.Words, t.Bytes, t.Offset, t.Free, t.BlockWords, t.MaxWords)
	case HookPosWordsDropped:
		l.Printf("block buffer dropped %d words past region end %d",
			t.Words, t.MaxWords)
	}
}
