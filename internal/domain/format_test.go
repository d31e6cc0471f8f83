package domain

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestFormatPrice(t *testing.T) {
	g := NewWithT(t)
	g.Expect(FormatPrice(nil)).To(Equal("-"))
	g.Expect(FormatPrice(Float(3))).To(Equal("3.00"))
	g.Expect(FormatPrice(Float(12.346))).To(Equal("12.35"))
}

func TestFormatQuantity(t *testing.T) {
	g := NewWithT(t)
	g.Expect(FormatQuantity(nil)).To(Equal("-"))
	g.Expect(FormatQuantity(Float(0))).To(Equal("0"))
	g.Expect(FormatQuantity(Float(40))).To(Equal("40"))
}

func TestFormatDate(t *testing.T) {
	g := NewWithT(t)
	g.Expect(FormatDate("")).To(Equal("-"))
	g.Expect(FormatDate("2024-03-05T10:11:12Z")).To(Equal("2024-03-05"))
	g.Expect(FormatDate("2024-03-05T10:11:12.1234567")).To(Equal("2024-03-05"))
	g.Expect(FormatDate("2024-03-05")).To(Equal("2024-03-05"))
	g.Expect(FormatDate("yesterday")).To(Equal("yesterday"))
}

func TestUnixMilliOrZero(t *testing.T) {
	g := NewWithT(t)
	g.Expect(UnixMilliOrZero("")).To(BeZero())
	g.Expect(UnixMilliOrZero("garbage")).To(BeZero())
	g.Expect(UnixMilliOrZero("1970-01-01T00:00:01Z")).To(Equal(int64(1000)))
}
