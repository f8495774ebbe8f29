package memory

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Process names", func() {
	It("should match exact names everywhere", func() {
		Expect(matchName("darwin", "Risk of Rain.exe", "Risk of Rain.exe")).
			To(BeTrue())
	})

	It("should match truncated names on Linux", func() {
		Expect(matchName("linux", "Risk of Rain Re", "Risk of Rain Returns.exe")).
			To(BeTrue())
		Expect(matchName("linux", "Risk of Rain 2.", "Risk of Rain Returns.exe")).
			To(BeFalse())
	})

	It("should match names case-insensitively on Windows", func() {
		Expect(matchName("windows", "risk of rain.exe", "Risk of Rain.exe")).
			To(BeTrue())
		Expect(matchName("linux", "risk of rain.exe", "Risk of Rain.exe")).
			To(BeFalse())
	})
})
