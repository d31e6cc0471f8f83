package domain

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/gomega"
)

func TestIDKeepsWireForm(t *testing.T) {
	g := NewWithT(t)

	var item StockItem
	g.Expect(json.Unmarshal([]byte(`{"id":12,"productId":"7","storeId":"a1b2","quantity":5}`), &item)).To(Succeed())

	g.Expect(item.ID.String()).To(Equal("12"))
	g.Expect(item.ProductID.String()).To(Equal("7"))
	g.Expect(item.StoreID.String()).To(Equal("a1b2"))

	// число и строка с одинаковым текстом совпадают
	g.Expect(item.ProductID.Equal(NumericID(7))).To(BeTrue())

	out, err := json.Marshal(item)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(out)).To(MatchJSON(`{"id":12,"productId":"7","storeId":"a1b2","quantity":5}`))
}

func TestIDNullAndMissing(t *testing.T) {
	g := NewWithT(t)

	var p Product
	g.Expect(json.Unmarshal([]byte(`{"id":null,"sku":"A"}`), &p)).To(Succeed())
	g.Expect(p.ID.IsZero()).To(BeTrue())

	out, err := json.Marshal(Product{SKU: "A", Name: "Apple", Price: Float(0)})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(out)).To(MatchJSON(`{"sku":"A","name":"Apple","price":0}`))
}

func TestIDRejectsObjects(t *testing.T) {
	var id ID
	NewWithT(t).Expect(json.Unmarshal([]byte(`{"x":1}`), &id)).To(HaveOccurred())
}

func TestParseID(t *testing.T) {
	g := NewWithT(t)

	g.Expect(ParseID("")).To(Equal(ID{}))
	b, _ := json.Marshal(ParseID("42"))
	g.Expect(string(b)).To(Equal("42"))
	b, _ = json.Marshal(ParseID("store-9"))
	g.Expect(string(b)).To(Equal(`"store-9"`))
}

func TestNumberText(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{`12.5`, 12.5, true},
		{`"12.5"`, 12.5, true},
		{`""`, 0, true},
		{`null`, 0, true},
		{`" 3 "`, 3, true},
		{`"abc"`, 0, false},
		{`"-1"`, -1, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			g := NewWithT(t)
			var n NumberText
			g.Expect(json.Unmarshal([]byte(tc.in), &n)).To(Succeed())
			got, ok := n.Float()
			g.Expect(ok).To(Equal(tc.ok))
			g.Expect(got).To(Equal(tc.want))
		})
	}
}
