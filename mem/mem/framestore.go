// Package mem provides the physical memory of the simulated machine.
package mem

import "fmt"

// PageSize is the number of bytes in a page, a frame, and a disk block.
const PageSize = 4096

// A FrameStore is the physical memory. It is divided into fixed-size frames,
// each of which can hold the content of one page.
type FrameStore struct {
	numFrames int
	data      []byte
}

// NewFrameStore creates a FrameStore with the given number of frames.
func NewFrameStore(numFrames int) *FrameStore {
	if numFrames <= 0 {
		panic(fmt.Sprintf("number of frames must be positive, got %d",
			numFrames))
	}

	return &FrameStore{
		numFrames: numFrames,
		data:      make([]byte, numFrames*PageSize),
	}
}

// NumFrames returns the number of frames in the store.
func (s *FrameStore) NumFrames() int {
	return s.numFrames
}

// Capacity returns the number of bytes in the store.
func (s *FrameStore) Capacity() uint64 {
	return uint64(len(s.data))
}

// Frame returns the bytes of a frame. The returned slice aliases the store,
// so disk transfers can read into and write from it directly.
func (s *FrameStore) Frame(frame int) []byte {
	s.frameMustExist(frame)

	base := frame * PageSize

	return s.data[base : base+PageSize : base+PageSize]
}

// Read returns the byte at the given offset of a frame.
func (s *FrameStore) Read(frame int, offset uint64) byte {
	return s.Frame(frame)[s.offsetMustBeInFrame(offset)]
}

// Write sets the byte at the given offset of a frame.
func (s *FrameStore) Write(frame int, offset uint64, value byte) {
	s.Frame(frame)[s.offsetMustBeInFrame(offset)] = value
}

func (s *FrameStore) frameMustExist(frame int) {
	if frame < 0 || frame >= s.numFrames {
		panic(fmt.Sprintf("frame %d out of range [0, %d)", frame, s.numFrames))
	}
}

func (s *FrameStore) offsetMustBeInFrame(offset uint64) uint64 {
	if offset >= PageSize {
		panic(fmt.Sprintf("offset %d beyond page size", offset))
	}

	return offset
}
