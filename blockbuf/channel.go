package blockbuf

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// Boundary violations recorded by a channel built with WithStrictBounds.
var (
	ErrReadPastEnd  = errors.New("blockbuf: read past end of region")
	ErrWritePastEnd = errors.New("blockbuf: write past end of region")
	ErrModeMismatch = errors.New("blockbuf: read and write mixed on one binding")
)

type mode int

const (
	modeNone mode = iota
	modeRead
	modeWrite
)

func (m mode) String() string {
	switch m {
	case modeRead:
		return "read"
	case modeWrite:
		return "write"
	default:
		return "unbound"
	}
}

type options struct {
	blockBytes int
	blockWords int
	strict     bool
}

// Option configures a Channel at construction.
type Option func(*options)

// WithConfig applies the block size and strictness from config.
func WithConfig(config *Config) Option {
	return func(o *options) {
		o.blockBytes = config.BlockBytes
		o.strict = config.Strict
	}
}

// WithBlockWords sets the buffer capacity in words directly, overriding the
// byte-sized block.
func WithBlockWords(n int) Option {
	return func(o *options) {
		o.blockWords = n
	}
}

// WithStrictBounds makes the channel record boundary violations. Data
// handling is the same as in the default mode.
func WithStrictBounds() Option {
	return func(o *options) {
		o.strict = true
	}
}

// Channel streams words to or from a Region one block at a time.
//
// A Channel is bound to a region with InitForRead or InitForWrite and is then
// driven by Get calls or by Put calls, never both. A write binding must end
// with Flush, or the last partial block is lost. A Channel is not safe for
// concurrent use.
type Channel[W Word] struct {
	*sim.HookableBase

	buf      []W
	region   Region[W]
	maxWords uint64

	regionCursor uint64
	bufferCursor int
	filled       int

	mode   mode
	strict bool
	err    error
	stats  Statistics
}

// NewChannel creates an unbound channel. Until it is bound it behaves as if
// bound to an empty region.
func NewChannel[W Word](opts ...Option) *Channel[W] {
	o := options{blockBytes: DefaultBlockBytes}
	for _, opt := range opts {
		opt(&o)
	}

	blockWords := o.blockWords
	if blockWords == 0 {
		config := &Config{BlockBytes: o.blockBytes}
		if err := ValidateFor[W](config); err != nil {
			panic(err)
		}
		blockWords = o.blockBytes / WordBytes[W]()
	}

	if blockWords <= 0 {
		panic(fmt.Sprintf("blockbuf: invalid block capacity %d", blockWords))
	}

	return &Channel[W]{
		HookableBase: sim.NewHookableBase(),
		buf:          make([]W, blockWords),
		strict:       o.strict,
	}
}

// InitForRead binds the channel to the first maxWords words of region for
// reading. The buffer starts exhausted so the first Get fills it. No transfer
// happens here.
func (c *Channel[W]) InitForRead(region Region[W], maxWords uint64) {
	c.bind(region, maxWords, modeRead)
	c.bufferCursor = len(c.buf)
}

// InitForWrite binds the channel to the first maxWords words of region for
// writing. The buffer starts with nothing pending. No transfer happens here.
func (c *Channel[W]) InitForWrite(region Region[W], maxWords uint64) {
	c.bind(region, maxWords, modeWrite)
	c.bufferCursor = 0
}

func (c *Channel[W]) bind(region Region[W], maxWords uint64, m mode) {
	if region == nil && maxWords > 0 {
		panic("blockbuf: nil region with non-zero length")
	}

	c.region = region
	c.maxWords = maxWords
	c.regionCursor = 0
	c.filled = 0
	c.mode = m
	c.err = nil
}

// IsEmpty reports whether no words are buffered.
func (c *Channel[W]) IsEmpty() bool {
	return c.bufferCursor == 0
}

// Get returns the next word of the region. Once maxWords words have been
// returned, every further call returns the sentinel.
func (c *Channel[W]) Get() W {
	c.stats.Gets++
	c.checkMode(modeRead)

	if c.regionCursor == c.maxWords && c.bufferCursor == len(c.buf) {
		c.readPastEnd()
		return Sentinel[W]()
	}

	if c.bufferCursor == len(c.buf) {
		c.fill()
	}

	w := Sentinel[W]()
	if c.bufferCursor < c.filled {
		w = c.buf[c.bufferCursor]
	} else {
		c.readPastEnd()
	}
	c.bufferCursor++

	return w
}

func (c *Channel[W]) fill() {
	toCopy := min(uint64(len(c.buf)), c.maxWords-c.regionCursor)

	// Zero-length transfers are never issued to the region.
	if toCopy != 0 {
		c.region.ReadBlock(c.regionCursor, c.buf[:toCopy])
		c.stats.Fills++
		c.stats.WordsRead += toCopy
		c.invoke(HookPosBlockFill, c.transfer(toCopy, 0))
	}

	c.regionCursor += toCopy
	c.filled = int(toCopy)
	c.bufferCursor = 0
}

// Put buffers w, writing the buffer out first if it is full. Words beyond
// maxWords are accepted here and dropped by the flush that would write them.
func (c *Channel[W]) Put(w W) {
	c.stats.Puts++
	c.checkMode(modeWrite)

	if c.bufferCursor == len(c.buf) {
		c.Flush()
	}

	c.buf[c.bufferCursor] = w
	c.bufferCursor++
}

// Flush writes the buffered words to the region, as many as the region still
// has room for. The rest are discarded. The buffer is empty afterwards.
func (c *Channel[W]) Flush() {
	c.checkMode(modeWrite)

	pending := uint64(c.bufferCursor)
	free := c.maxWords - c.regionCursor
	toCopy := min(free, pending)

	if toCopy != 0 {
		c.region.WriteBlock(c.regionCursor, c.buf[:toCopy])
		c.stats.Flushes++
		c.stats.WordsWritten += toCopy
		c.invoke(HookPosBlockFlush, c.transfer(toCopy, free))
	}
	c.regionCursor += toCopy

	if dropped := pending - toCopy; dropped != 0 {
		c.stats.WordsDropped += dropped
		c.invoke(HookPosWordsDropped, c.transfer(dropped, 0))
		c.record(ErrWritePastEnd)
	}

	c.bufferCursor = 0
}

// BlockWords returns the buffer capacity in words.
func (c *Channel[W]) BlockWords() int {
	return len(c.buf)
}

// MaxWords returns the declared region length of the current binding.
func (c *Channel[W]) MaxWords() uint64 {
	return c.maxWords
}

// Transferred returns the number of region words moved so far in the
// current binding.
func (c *Channel[W]) Transferred() uint64 {
	return c.regionCursor
}

// Pending returns the buffer cursor: words consumed from the buffer in read
// mode, words waiting to be flushed in write mode.
func (c *Channel[W]) Pending() int {
	return c.bufferCursor
}

// Err returns the first boundary violation of the current binding. It is
// always nil unless the channel was built with WithStrictBounds.
func (c *Channel[W]) Err() error {
	return c.err
}

// Stats returns the channel statistics.
func (c *Channel[W]) Stats() Statistics {
	return c.stats
}

// ResetStats clears the channel statistics.
func (c *Channel[W]) ResetStats() {
	c.stats = Statistics{}
}

func (c *Channel[W]) readPastEnd() {
	c.stats.SentinelReads++
	c.record(ErrReadPastEnd)
}

func (c *Channel[W]) checkMode(want mode) {
	if c.mode != modeNone && c.mode != want {
		c.record(fmt.Errorf("%w: %s on a %s binding", ErrModeMismatch, want, c.mode))
	}
}

func (c *Channel[W]) record(err error) {
	if c.strict && c.err == nil {
		c.err = err
	}
}

func (c *Channel[W]) transfer(words, free uint64) Transfer {
	return Transfer{
		Offset:     c.regionCursor,
		Words:      words,
		Bytes:      words * uint64(WordBytes[W]()),
		Free:       free,
		BlockWords: len(c.buf),
		MaxWords:   c.maxWords,
	}
}

func (c *Channel[W]) invoke(pos *sim.HookPos, t Transfer) {
	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    pos,
		Item:   t,
	})
}
