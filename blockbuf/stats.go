package blockbuf

// Statistics holds channel activity counters.
type Statistics struct {
	Gets          uint64
	Puts          uint64
	Fills         uint64
	Flushes       uint64
	WordsRead     uint64
	WordsWritten  uint64
	WordsDropped  uint64
	SentinelReads uint64
}

// WordsPerFill returns the average number of words moved per fill.
func (s Statistics) WordsPerFill() float64 {
	if s.Fills == 0 {
		return 0
	}
	return float64(s.WordsRead) / float64(s.Fills)
}

// WordsPerFlush returns the average number of words moved per flush.
func (s Statistics) WordsPerFlush() float64 {
	if s.Flushes == 0 {
		return 0
	}
	return float64(s.WordsWritten) / float64(s.Flushes)
}
