package vm

import (
	"fmt"
	"sort"
	"sync"
)

const noPage PageID = -1

// A PageTable holds the mapping from virtual pages to physical frames, and the
// permission of each page.
type PageTable interface {
	// NumPages returns the number of virtual pages.
	NumPages() int

	// NumFrames returns the number of physical frames.
	NumFrames() int

	// Access checks if the page may be accessed with the given kind. It
	// returns a *Fault if not.
	Access(page PageID, kind AccessKind) error

	// SetEntry maps the page to the frame with the given permission. Setting
	// PermNone removes the mapping.
	SetEntry(page PageID, frame FrameID, perm Permission)

	// Clear removes the mapping of the page.
	Clear(page PageID)

	// Find returns the entry of the page.
	Find(page PageID) Page

	// IsResident tells if the page is mapped to a frame.
	IsResident(page PageID) bool

	// FrameOf returns the frame that holds the page. The bool return value
	// tells if the page is resident.
	FrameOf(page PageID) (FrameID, bool)

	// PermissionOf returns the permission of the page.
	PermissionOf(page PageID) Permission

	// PageInFrame returns the page that occupies the frame. The bool return
	// value tells if the frame is occupied.
	PageInFrame(frame FrameID) (PageID, bool)

	// FreeFrame returns the lowest numbered frame that no page occupies. The
	// bool return value is false if all frames are occupied.
	FreeFrame() (FrameID, bool)

	// ResidentPages returns the resident pages in ascending order.
	ResidentPages() []PageID

	// ResidentEntries returns the entries of the resident pages in ascending
	// page order.
	ResidentEntries() []Page

	// NumResident returns the number of resident pages.
	NumResident() int
}

// NewPageTable creates a PageTable with all the pages non-resident.
func NewPageTable(numPages, numFrames int) PageTable {
	if numPages <= 0 {
		panic(fmt.Sprintf("number of pages must be positive, got %d", numPages))
	}

	if numFrames <= 0 {
		panic(fmt.Sprintf("number of frames must be positive, got %d",
			numFrames))
	}

	pt := &pageTableImpl{
		pages:      make([]Page, numPages),
		frameOwner: make([]PageID, numFrames),
	}

	for i := range pt.pages {
		pt.pages[i].ID = PageID(i)
	}

	for i := range pt.frameOwner {
		pt.frameOwner[i] = noPage
	}

	return pt
}

// pageTableImpl is the default implementation of a PageTable. It keeps a
// frame to page reverse index so that frame lookups do not scan the pages.
type pageTableImpl struct {
	sync.Mutex
	pages       []Page
	frameOwner  []PageID
	numResident int
}

func (pt *pageTableImpl) NumPages() int {
	return len(pt.pages)
}

func (pt *pageTableImpl) NumFrames() int {
	return len(pt.frameOwner)
}

func (pt *pageTableImpl) Access(page PageID, kind AccessKind) error {
	pt.Lock()
	defer pt.Unlock()

	pt.pageMustExist(page)

	entry := pt.pages[page]
	if entry.Perm.Allows(kind) {
		return nil
	}

	fault := &Fault{Page: page, Access: kind, Kind: PresenceFault}
	if entry.Resident {
		fault.Kind = ProtectionFault
	}

	return fault
}

func (pt *pageTableImpl) SetEntry(page PageID, frame FrameID, perm Permission) {
	pt.Lock()
	defer pt.Unlock()

	pt.pageMustExist(page)

	if perm == PermNone {
		pt.clear(page)
		return
	}

	pt.frameMustExist(frame)

	owner := pt.frameOwner[frame]
	if owner != noPage && owner != page {
		panic(fmt.Sprintf("frame %d already holds page %d, cannot map page %d",
			frame, owner, page))
	}

	entry := &pt.pages[page]
	if entry.Resident && entry.Frame != frame {
		pt.frameOwner[entry.Frame] = noPage
	}

	if !entry.Resident {
		pt.numResident++
	}

	entry.Resident = true
	entry.Frame = frame
	entry.Perm = perm
	pt.frameOwner[frame] = page
}

func (pt *pageTableImpl) Clear(page PageID) {
	pt.Lock()
	defer pt.Unlock()

	pt.pageMustExist(page)
	pt.clear(page)
}

func (pt *pageTableImpl) clear(page PageID) {
	entry := &pt.pages[page]
	if entry.Resident {
		pt.frameOwner[entry.Frame] = noPage
		pt.numResident--
	}

	*entry = Page{ID: page}
}

func (pt *pageTableImpl) Find(page PageID) Page {
	pt.Lock()
	defer pt.Unlock()

	pt.pageMustExist(page)

	return pt.pages[page]
}

func (pt *pageTableImpl) IsResident(page PageID) bool {
	return pt.Find(page).Resident
}

func (pt *pageTableImpl) FrameOf(page PageID) (FrameID, bool) {
	entry := pt.Find(page)
	return entry.Frame, entry.Resident
}

func (pt *pageTableImpl) PermissionOf(page PageID) Permission {
	return pt.Find(page).Perm
}

func (pt *pageTableImpl) PageInFrame(frame FrameID) (PageID, bool) {
	pt.Lock()
	defer pt.Unlock()

	pt.frameMustExist(frame)

	owner := pt.frameOwner[frame]

	return owner, owner != noPage
}

func (pt *pageTableImpl) FreeFrame() (FrameID, bool) {
	pt.Lock()
	defer pt.Unlock()

	if pt.numResident == len(pt.frameOwner) {
		return 0, false
	}

	for frame, owner := range pt.frameOwner {
		if owner == noPage {
			return FrameID(frame), true
		}
	}

	panic("resident count does not match the frame index")
}

func (pt *pageTableImpl) ResidentPages() []PageID {
	pt.Lock()
	defer pt.Unlock()

	return pt.residentPages()
}

func (pt *pageTableImpl) residentPages() []PageID {
	pages := make([]PageID, 0, pt.numResident)
	for _, owner := range pt.frameOwner {
		if owner != noPage {
			pages = append(pages, owner)
		}
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i] < pages[j] })

	return pages
}

func (pt *pageTableImpl) ResidentEntries() []Page {
	pt.Lock()
	defer pt.Unlock()

	pages := pt.residentPages()
	entries := make([]Page, len(pages))

	for i, page := range pages {
		entries[i] = pt.pages[page]
	}

	return entries
}

func (pt *pageTableImpl) NumResident() int {
	pt.Lock()
	defer pt.Unlock()

	return pt.numResident
}

func (pt *pageTableImpl) pageMustExist(page PageID) {
	if page < 0 || int(page) >= len(pt.pages) {
		panic(fmt.Sprintf("page %d does not exist", page))
	}
}

func (pt *pageTableImpl) frameMustExist(frame FrameID) {
	if frame < 0 || int(frame) >= len(pt.frameOwner) {
		panic(fmt.Sprintf("frame %d does not exist", frame))
	}
}
