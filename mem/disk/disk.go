// Package disk provides the backing store that holds pages while they are not
// resident in physical memory.
package disk

import (
	"errors"

	"github.com/elliott-beach/virtmem/mem/mem"
)

// BlockSize is the number of bytes in a disk block. It equals the page size so
// that a page always maps to exactly one block.
const BlockSize = mem.PageSize

var (
	// ErrBlockOutOfRange is returned when accessing a block beyond the disk.
	ErrBlockOutOfRange = errors.New("block out of range")

	// ErrShortBuffer is returned when a transfer buffer is smaller than a block.
	ErrShortBuffer = errors.New("buffer smaller than a block")

	// ErrInvalidBlockCount is returned when creating a disk with no blocks.
	ErrInvalidBlockCount = errors.New("number of blocks must be positive")

	// ErrClosed is returned when using a disk after Close.
	ErrClosed = errors.New("disk is closed")
)

// A Disk stores fixed-size blocks addressed by block index.
type Disk interface {
	// NumBlocks returns the number of blocks the disk can hold.
	NumBlocks() int

	// ReadBlock copies block index into out. out must hold at least BlockSize
	// bytes.
	ReadBlock(index int, out []byte) error

	// WriteBlock copies the first BlockSize bytes of in into block index.
	WriteBlock(index int, in []byte) error

	// Close releases the resources held by the disk.
	Close() error
}

func checkTransfer(index, numBlocks int, buf []byte) error {
	if index < 0 || index >= numBlocks {
		return ErrBlockOutOfRange
	}

	if len(buf) < BlockSize {
		return ErrShortBuffer
	}

	return nil
}
