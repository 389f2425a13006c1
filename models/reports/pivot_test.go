package reports

import (
	"testing"

	"github.com/kuchya/ris-app/models"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func pivotOrderSet() *models.OrderSet {
	return &models.OrderSet{Lines: []*models.OrderLine{
		{
			Brand: strPtr("Acme"), FulfillmentState: strPtr("Delhi"), ShipState: "Delhi",
			QuantityShipped: qty(10), RISStatus: models.StatusRIS, RISByTable: models.StatusNonRIS,
		},
		{
			Brand: strPtr("Acme"), FulfillmentState: strPtr("Delhi"), ShipState: "Haryana",
			QuantityShipped: qty(5), RISStatus: models.StatusNonRIS, RISByTable: models.StatusNonRIS,
		},
		{
			Brand: strPtr("Acme"), FulfillmentState: strPtr("Karnataka"), ShipState: "Karnataka",
			QuantityShipped: qty(3), RISStatus: models.StatusRIS, RISByTable: models.StatusRIS,
		},
		{
			Brand: strPtr("Globex"), FulfillmentState: strPtr("Delhi"), ShipState: "Delhi",
			QuantityShipped: qty(7), RISStatus: models.StatusRIS, RISByTable: models.StatusNonRIS,
		},
		{
			Brand: nil, FulfillmentState: nil, ShipState: "Delhi",
			QuantityShipped: qty(2), RISStatus: models.StatusNonRIS, RISByTable: models.StatusNonRIS,
		},
	}}
}

func findRow(t *PivotTable, kind GroupKeyKind, brand, fstate, sstate string) *PivotRow {
	for _, row := range t.Rows {
		k := row.Key
		if k.Kind == kind && k.Brand == brand && k.FulfillmentState == fstate && k.ShipState == sstate {
			return row
		}
	}
	return nil
}

func TestBuildDetailedPivot_LeafSums(t *testing.T) {
	table := BuildDetailedPivot(pivotOrderSet(), SchemeStateMatch)

	leaf := findRow(table, KeyLeaf, "Acme", "Delhi", "Delhi")
	if leaf == nil {
		t.Fatal("missing leaf row Acme/Delhi/Delhi")
	}
	if !leaf.RIS.Equal(qty(10)) || !leaf.NonRIS.IsZero() || !leaf.GrandTotal.Equal(qty(10)) {
		t.Fatalf("leaf sums wrong: ris=%s nonris=%s total=%s", leaf.RIS, leaf.NonRIS, leaf.GrandTotal)
	}

	// Brandless lines group under the empty label instead of vanishing.
	orphan := findRow(table, KeyLeaf, "", "", "Delhi")
	if orphan == nil {
		t.Fatal("missing leaf row for brandless lines")
	}
	if !orphan.NonRIS.Equal(qty(2)) {
		t.Fatalf("brandless leaf sum wrong: %s", orphan.NonRIS)
	}
}

func TestBuildDetailedPivot_SubtotalConsistency(t *testing.T) {
	table := BuildDetailedPivot(pivotOrderSet(), SchemeStateMatch)

	stateTotal := findRow(table, KeyStateSubtotal, "Acme", "Delhi", "")
	if stateTotal == nil {
		t.Fatal("missing state subtotal Acme/Delhi")
	}
	if !stateTotal.GrandTotal.Equal(qty(15)) || !stateTotal.RIS.Equal(qty(10)) || !stateTotal.NonRIS.Equal(qty(5)) {
		t.Fatalf("state subtotal wrong: %s/%s/%s", stateTotal.NonRIS, stateTotal.RIS, stateTotal.GrandTotal)
	}

	brandTotal := findRow(table, KeyBrandSubtotal, "Acme", "", "")
	if brandTotal == nil {
		t.Fatal("missing brand subtotal Acme")
	}
	if !brandTotal.GrandTotal.Equal(qty(18)) {
		t.Fatalf("brand subtotal expected 18, got %s", brandTotal.GrandTotal)
	}

	// Brand subtotal equals the sum of its leaves; the grand total equals
	// the sum of all brand subtotals.
	var leafSum, brandSum decimal.Decimal
	for _, row := range table.Rows {
		switch row.Key.Kind {
		case KeyLeaf:
			if row.Key.Brand == "Acme" {
				leafSum = leafSum.Add(row.GrandTotal)
			}
		case KeyBrandSubtotal:
			brandSum = brandSum.Add(row.GrandTotal)
		}
	}
	if !leafSum.Equal(brandTotal.GrandTotal) {
		t.Fatalf("brand subtotal %s != leaf sum %s", brandTotal.GrandTotal, leafSum)
	}

	grand := table.Rows[len(table.Rows)-1]
	if grand.Key.Kind != KeyGrandTotal {
		t.Fatal("grand total must be the final row")
	}
	if !grand.GrandTotal.Equal(brandSum) {
		t.Fatalf("grand total %s != sum of brand subtotals %s", grand.GrandTotal, brandSum)
	}
	if !grand.GrandTotal.Equal(grand.RIS.Add(grand.NonRIS)) {
		t.Fatal("grand total must equal ris + non-ris")
	}
}

func TestBuildDetailedPivot_RowOrder(t *testing.T) {
	table := BuildDetailedPivot(pivotOrderSet(), SchemeStateMatch)

	pos := func(kind GroupKeyKind, brand, fstate, sstate string) int {
		for i, row := range table.Rows {
			k := row.Key
			if k.Kind == kind && k.Brand == brand && k.FulfillmentState == fstate && k.ShipState == sstate {
				return i
			}
		}
		t.Fatalf("row not found: %v %q %q %q", kind, brand, fstate, sstate)
		return -1
	}

	// Leaves for a state precede that state's subtotal.
	if !(pos(KeyLeaf, "Acme", "Delhi", "Delhi") < pos(KeyLeaf, "Acme", "Delhi", "Haryana")) {
		t.Fatal("leaves not sorted by ship state")
	}
	if !(pos(KeyLeaf, "Acme", "Delhi", "Haryana") < pos(KeyStateSubtotal, "Acme", "Delhi", "")) {
		t.Fatal("state subtotal should follow its leaves")
	}
	// Brands are sorted, and the grand total stays last.
	if !(pos(KeyBrandSubtotal, "Acme", "", "") < pos(KeyLeaf, "Globex", "Delhi", "Delhi")) {
		t.Fatal("brand groups out of order")
	}
	if table.Rows[len(table.Rows)-1].Key.Kind != KeyGrandTotal {
		t.Fatal("grand total must remain the final row regardless of label order")
	}
}

func TestBuildDetailedPivot_BothColumnsAlwaysPresent(t *testing.T) {
	// Every line is Non RIS under the local-mapping scheme; the RIS column
	// must still exist, as zero.
	set := &models.OrderSet{Lines: []*models.OrderLine{
		{Brand: strPtr("Acme"), FulfillmentState: strPtr("Delhi"), ShipState: "Delhi",
			QuantityShipped: qty(4), RISStatus: models.StatusRIS, RISByTable: models.StatusNonRIS},
	}}
	table := BuildDetailedPivot(set, SchemeLocalMapping)
	leaf := findRow(table, KeyLeaf, "Acme", "Delhi", "Delhi")
	if leaf == nil {
		t.Fatal("missing leaf row")
	}
	if !leaf.RIS.IsZero() || !leaf.NonRIS.Equal(qty(4)) {
		t.Fatalf("expected ris=0 nonris=4, got ris=%s nonris=%s", leaf.RIS, leaf.NonRIS)
	}
}

func TestGroupKeyLabels(t *testing.T) {
	cases := []struct {
		key      GroupKey
		expected [3]string
	}{
		{GroupKey{Kind: KeyLeaf, Brand: "Acme", FulfillmentState: "Delhi", ShipState: "Haryana"}, [3]string{"Acme", "Delhi", "Haryana"}},
		{GroupKey{Kind: KeyStateSubtotal, Brand: "Acme", FulfillmentState: "Delhi"}, [3]string{"Acme", "Delhi Total", ""}},
		{GroupKey{Kind: KeyBrandSubtotal, Brand: "Acme"}, [3]string{"Acme", "Acme Total", ""}},
		{GroupKey{Kind: KeyGrandTotal}, [3]string{"Grand Total", "", ""}},
	}
	for _, tc := range cases {
		b, f, s := tc.key.Labels()
		if b != tc.expected[0] || f != tc.expected[1] || s != tc.expected[2] {
			t.Fatalf("labels for %v: expected %v, got (%q,%q,%q)", tc.key.Kind, tc.expected, b, f, s)
		}
	}
}
