package timer

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Lifecycle", func() {
	It("should parse every known phase", func() {
		for _, l := range []Lifecycle{NotRunning, Running, Paused, Ended, Unknown} {
			parsed, ok := ParseLifecycle(l.String())

			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(l))
			Expect(parsed.Known()).To(BeTrue())
		}
	})

	It("should map unknown phases outside the known set", func() {
		l, ok := ParseLifecycle("Frozen")

		Expect(ok).To(BeFalse())
		Expect(l.Known()).To(BeFalse())
		Expect(l.String()).To(Equal("Lifecycle(-1)"))
	})

	It("should encode phases by name", func() {
		data, err := json.Marshal(map[string]Lifecycle{"phase": Paused})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"phase":"Paused"}`))

		var decoded map[string]Lifecycle
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded["phase"]).To(Equal(Paused))
	})

	It("should refuse to decode unknown phase names", func() {
		var l Lifecycle
		Expect(l.UnmarshalText([]byte("Frozen"))).NotTo(Succeed())
	})
})
