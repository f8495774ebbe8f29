package watch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sample", func() {
	var s *Sample[int]

	BeforeEach(func() {
		s = &Sample[int]{}
	})

	It("should not have a pair before the first update", func() {
		_, _, ok := s.Pair()

		Expect(ok).To(BeFalse())
		Expect(s.Changed()).To(BeFalse())
		Expect(Increased(s)).To(BeFalse())
		Expect(Decreased(s)).To(BeFalse())
	})

	It("should report unchanged on the first update", func() {
		s.Set(5)

		old, cur, ok := s.Pair()
		Expect(ok).To(BeTrue())
		Expect(old).To(Equal(5))
		Expect(cur).To(Equal(5))
		Expect(s.Changed()).To(BeFalse())
	})

	It("should report unchanged for equal consecutive values", func() {
		s.Set(3)
		s.Set(3)

		Expect(s.Changed()).To(BeFalse())
		Expect(s.ChangedTo(3)).To(BeFalse())
	})

	It("should report an increase", func() {
		s.Set(5)
		s.Set(6)

		Expect(s.Changed()).To(BeTrue())
		Expect(Increased(s)).To(BeTrue())
		Expect(Decreased(s)).To(BeFalse())
		Expect(s.ChangedFrom(5)).To(BeTrue())
		Expect(s.ChangedTo(6)).To(BeTrue())
		Expect(s.ChangedFromTo(5, 6)).To(BeTrue())
		Expect(s.ChangedFromTo(6, 5)).To(BeFalse())
	})

	It("should report a decrease", func() {
		s.Set(6)
		s.Set(5)

		Expect(Decreased(s)).To(BeTrue())
		Expect(Increased(s)).To(BeFalse())
	})

	It("should invalidate the pair on a missing sample", func() {
		s.Set(1)
		s.Set(2)
		s.Update(0, false)

		_, ok := s.Current()
		Expect(ok).To(BeFalse())
		Expect(s.Changed()).To(BeFalse())
		Expect(s.ChangedTo(2)).To(BeFalse())
	})

	It("should suppress the edge across a gap", func() {
		s.Set(5)
		s.Update(0, false)
		s.Set(5)

		Expect(s.Changed()).To(BeFalse())
	})

	It("should suppress the edge across a gap even when the value differs", func() {
		s.Set(5)
		s.Invalidate()
		s.Set(9)

		old, cur, ok := s.Pair()
		Expect(ok).To(BeTrue())
		Expect(old).To(Equal(9))
		Expect(cur).To(Equal(9))
		Expect(s.Changed()).To(BeFalse())
	})

	It("should detect edges again after recovering from a gap", func() {
		s.Set(5)
		s.Invalidate()
		s.Set(5)
		s.Set(7)

		Expect(s.ChangedFromTo(5, 7)).To(BeTrue())
	})

	It("should forget everything on reset", func() {
		s.Set(5)
		s.Set(7)
		s.Reset()

		Expect(s.Valid()).To(BeFalse())
		s.Set(1)
		Expect(s.Changed()).To(BeFalse())
	})

	It("should work with strings", func() {
		scene := &Sample[string]{}
		scene.Set("lobby")
		scene.Set("golemplains")

		Expect(scene.ChangedFrom("lobby")).To(BeTrue())
		Expect(Increased(scene)).To(BeFalse())
	})

	It("should format the latest observation", func() {
		Expect(s.String()).To(Equal("[invalid]"))

		s.Set(41)
		Expect(s.String()).To(Equal("41"))

		s.Invalidate()
		Expect(s.String()).To(Equal("[invalid]"))
	})
})
