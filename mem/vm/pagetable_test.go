package vm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PageTable", func() {
	var pt PageTable

	BeforeEach(func() {
		pt = NewPageTable(8, 3)
	})

	It("should start with no resident pages", func() {
		Expect(pt.NumPages()).To(Equal(8))
		Expect(pt.NumFrames()).To(Equal(3))
		Expect(pt.NumResident()).To(Equal(0))
		Expect(pt.ResidentPages()).To(BeEmpty())

		entry := pt.Find(5)
		Expect(entry).To(Equal(Page{ID: 5}))
		Expect(entry.Dirty()).To(BeFalse())
	})

	Context("access", func() {
		It("should report a presence fault for non-resident pages", func() {
			err := pt.Access(2, AccessRead)

			Expect(err).To(Equal(&Fault{
				Page: 2, Access: AccessRead, Kind: PresenceFault,
			}))
		})

		It("should report a protection fault for writes to read-only pages", func() {
			pt.SetEntry(2, 0, PermRead)

			Expect(pt.Access(2, AccessRead)).To(Succeed())
			Expect(pt.Access(2, AccessWrite)).To(Equal(&Fault{
				Page: 2, Access: AccessWrite, Kind: ProtectionFault,
			}))
		})

		It("should allow both accesses on read-write pages", func() {
			pt.SetEntry(2, 0, PermReadWrite)

			Expect(pt.Access(2, AccessRead)).To(Succeed())
			Expect(pt.Access(2, AccessWrite)).To(Succeed())
		})
	})

	Context("set entry", func() {
		It("should map pages and keep the reverse index", func() {
			pt.SetEntry(4, 1, PermRead)

			frame, ok := pt.FrameOf(4)
			Expect(ok).To(BeTrue())
			Expect(frame).To(Equal(FrameID(1)))
			Expect(pt.PermissionOf(4)).To(Equal(PermRead))
			Expect(pt.IsResident(4)).To(BeTrue())

			page, ok := pt.PageInFrame(1)
			Expect(ok).To(BeTrue())
			Expect(page).To(Equal(PageID(4)))
		})

		It("should upgrade permission in place", func() {
			pt.SetEntry(4, 1, PermRead)
			pt.SetEntry(4, 1, PermReadWrite)

			Expect(pt.NumResident()).To(Equal(1))
			Expect(pt.Find(4).Dirty()).To(BeTrue())
		})

		It("should release the old frame when a page moves", func() {
			pt.SetEntry(4, 1, PermRead)
			pt.SetEntry(4, 2, PermRead)

			_, ok := pt.PageInFrame(1)
			Expect(ok).To(BeFalse())
			Expect(pt.NumResident()).To(Equal(1))
		})

		It("should clear the entry when permission is none", func() {
			pt.SetEntry(4, 1, PermReadWrite)
			pt.SetEntry(4, 0, PermNone)

			Expect(pt.Find(4)).To(Equal(Page{ID: 4}))
			_, ok := pt.PageInFrame(1)
			Expect(ok).To(BeFalse())
			Expect(pt.NumResident()).To(Equal(0))
		})

		It("should panic when a frame is mapped twice", func() {
			pt.SetEntry(4, 1, PermRead)

			Expect(func() { pt.SetEntry(5, 1, PermRead) }).To(Panic())
		})

		It("should panic on unknown pages and frames", func() {
			Expect(func() { pt.SetEntry(8, 0, PermRead) }).To(Panic())
			Expect(func() { pt.SetEntry(0, 3, PermRead) }).To(Panic())
			Expect(func() { pt.Find(-1) }).To(Panic())
		})
	})

	Context("clear", func() {
		It("should be a no-op for non-resident pages", func() {
			pt.Clear(3)

			Expect(pt.NumResident()).To(Equal(0))
		})
	})

	Context("free frames", func() {
		It("should return the lowest free frame", func() {
			pt.SetEntry(0, 0, PermRead)
			pt.SetEntry(1, 2, PermRead)

			frame, ok := pt.FreeFrame()
			Expect(ok).To(BeTrue())
			Expect(frame).To(Equal(FrameID(1)))
		})

		It("should report when all frames are used", func() {
			pt.SetEntry(0, 0, PermRead)
			pt.SetEntry(1, 1, PermRead)
			pt.SetEntry(2, 2, PermRead)

			_, ok := pt.FreeFrame()
			Expect(ok).To(BeFalse())
		})
	})

	It("should list resident pages in page order", func() {
		pt.SetEntry(7, 0, PermRead)
		pt.SetEntry(1, 1, PermReadWrite)
		pt.SetEntry(3, 2, PermRead)

		Expect(pt.ResidentPages()).To(Equal([]PageID{1, 3, 7}))
		Expect(pt.ResidentEntries()).To(Equal([]Page{
			{ID: 1, Resident: true, Frame: 1, Perm: PermReadWrite},
			{ID: 3, Resident: true, Frame: 2, Perm: PermRead},
			{ID: 7, Resident: true, Frame: 0, Perm: PermRead},
		}))
	})

	It("should reject empty tables", func() {
		Expect(func() { NewPageTable(0, 1) }).To(Panic())
		Expect(func() { NewPageTable(1, 0) }).To(Panic())
	})
})

var _ = Describe("Permission", func() {
	DescribeTable("allows",
		func(perm Permission, kind AccessKind, allowed bool) {
			Expect(perm.Allows(kind)).To(Equal(allowed))
		},
		Entry("none read", PermNone, AccessRead, false),
		Entry("none write", PermNone, AccessWrite, false),
		Entry("read read", PermRead, AccessRead, true),
		Entry("read write", PermRead, AccessWrite, false),
		Entry("read-write read", PermReadWrite, AccessRead, true),
		Entry("read-write write", PermReadWrite, AccessWrite, true),
	)
})
