package blockbuf

import (
	"encoding/binary"
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// Region is the backing linear memory a Channel streams to and from.
// Offsets are in words. Callers of a Channel own the region; the channel only
// touches words in [0, maxWords).
type Region[W Word] interface {
	// ReadBlock copies len(dst) words starting at word offset into dst.
	ReadBlock(offset uint64, dst []W)
	// WriteBlock copies src into the region starting at word offset.
	WriteBlock(offset uint64, src []W)
}

// SliceRegion is a Region backed by a Go slice.
type SliceRegion[W Word] []W

// ReadBlock copies words out of the slice.
func (r SliceRegion[W]) ReadBlock(offset uint64, dst []W) {
	copy(dst, r[offset:offset+uint64(len(dst))])
}

// WriteBlock copies words into the slice.
func (r SliceRegion[W]) WriteBlock(offset uint64, src []W) {
	copy(r[offset:offset+uint64(len(src))], src)
}

// ByteRegion is a Region over raw bytes, with each word encoded in the given
// byte order.
type ByteRegion[W Word] struct {
	data  []byte
	order binary.ByteOrder
}

// NewByteRegion wraps data as a Region of W words.
func NewByteRegion[W Word](data []byte, order binary.ByteOrder) *ByteRegion[W] {
	return &ByteRegion[W]{data: data, order: order}
}

// Bytes returns the underlying bytes.
func (r *ByteRegion[W]) Bytes() []byte {
	return r.data
}

// Words returns how many whole words fit in the region.
func (r *ByteRegion[W]) Words() uint64 {
	return uint64(len(r.data) / WordBytes[W]())
}

// ReadBlock decodes len(dst) words starting at word offset.
func (r *ByteRegion[W]) ReadBlock(offset uint64, dst []W) {
	width := uint64(WordBytes[W]())
	start := offset * width
	decodeWords(r.data[start:start+uint64(len(dst))*width], r.order, dst)
}

// WriteBlock encodes src starting at word offset.
func (r *ByteRegion[W]) WriteBlock(offset uint64, src []W) {
	width := uint64(WordBytes[W]())
	start := offset * width
	encodeWords(r.data[start:start+uint64(len(src))*width], r.order, src)
}

// StorageRegion is a Region over an akita storage, starting at a byte base
// address. Words are stored little-endian.
type StorageRegion[W Word] struct {
	storage *mem.Storage
	base    uint64
}

// NewStorageRegion creates a region that maps word 0 to byte address base in
// storage.
func NewStorageRegion[W Word](storage *mem.Storage, base uint64) *StorageRegion[W] {
	return &StorageRegion[W]{storage: storage, base: base}
}

// Storage returns the backing storage.
func (r *StorageRegion[W]) Storage() *mem.Storage {
	return r.storage
}

// ReadBlock fetches len(dst) words from the storage.
func (r *StorageRegion[W]) ReadBlock(offset uint64, dst []W) {
	width := uint64(WordBytes[W]())
	addr := r.base + offset*width

	data, err := r.storage.Read(addr, uint64(len(dst))*width)
	if err != nil {
		panic(fmt.Errorf("block read at 0x%x: %w", addr, err))
	}

	decodeWords(data, binary.LittleEndian, dst)
}

// WriteBlock stores src into the storage.
func (r *StorageRegion[W]) WriteBlock(offset uint64, src []W) {
	width := uint64(WordBytes[W]())
	addr := r.base + offset*width

	data := make([]byte, uint64(len(src))*width)
	encodeWords(data, binary.LittleEndian, src)

	if err := r.storage.Write(addr, data); err != nil {
		panic(fmt.Errorf("block write at 0x%x: %w", addr, err))
	}
}

// decodeWords fills dst from data, which holds exactly len(dst) words.
func decodeWords[W Word](data []byte, order binary.ByteOrder, dst []W) {
	width := WordBytes[W]()
	for i := range dst {
		b := data[i*width : (i+1)*width]
		switch width {
		case 1:
			dst[i] = W(b[0])
		case 2:
			dst[i] = W(order.Uint16(b))
		case 4:
			dst[i] = W(order.Uint32(b))
		default:
			dst[i] = W(order.Uint64(b))
		}
	}
}

// encodeWords writes src into data, which has room for exactly len(src) words.
func encodeWords[W Word](data []byte, order binary.ByteOrder, src []W) {
	width := WordBytes[W]()
	for i, w := range src {
		b := data[i*width : (i+1)*width]
		switch width {
		case 1:
			b[0] = byte(w)
		case 2:
			order.PutUint16(b, uint16(w))
		case 4:
			order.PutUint32(b, uint32(w))
		default:
			order.PutUint64(b, uint64(w))
		}
	}
}
