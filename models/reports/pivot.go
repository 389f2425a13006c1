package reports

import (
	"sort"

	"github.com/kuchya/ris-app/models"
	"github.com/kuchya/ris-app/utils"
	"github.com/shopspring/decimal"
)

// Scheme selects which of the two classification labels a report is built
// from.
type Scheme int

const (
	SchemeStateMatch Scheme = iota
	SchemeLocalMapping
)

func (s Scheme) String() string {
	if s == SchemeLocalMapping {
		return "inventory-placement"
	}
	return "state-based"
}

func (s Scheme) statusOf(line *models.OrderLine) models.RISStatus {
	if s == SchemeLocalMapping {
		return line.RISByTable
	}
	return line.RISStatus
}

// GroupKeyKind tags the four row levels of the detailed pivot. Subtotal
// rows are real variants, not empty-string placeholder tuples.
type GroupKeyKind int

const (
	KeyLeaf GroupKeyKind = iota
	KeyStateSubtotal
	KeyBrandSubtotal
	KeyGrandTotal
)

// GroupKey identifies one pivot row. Which fields are meaningful depends
// on Kind: a leaf carries all three, a state subtotal brand+state, a brand
// subtotal just the brand, the grand total none.
type GroupKey struct {
	Kind             GroupKeyKind
	Brand            string
	FulfillmentState string
	ShipState        string
}

// Labels renders the key as the three display columns, with the " Total"
// suffixes the rollup rows carry in the report.
func (k GroupKey) Labels() (brand, fulfillmentState, shipState string) {
	switch k.Kind {
	case KeyStateSubtotal:
		return k.Brand, k.FulfillmentState + " Total", ""
	case KeyBrandSubtotal:
		return k.Brand, k.Brand + " Total", ""
	case KeyGrandTotal:
		return "Grand Total", "", ""
	default:
		return k.Brand, k.FulfillmentState, k.ShipState
	}
}

// PivotRow is one row of a detailed pivot: quantity sums split by the two
// classification values plus their total. Both value columns always
// exist; a classification value absent from the data is just zero.
type PivotRow struct {
	Key        GroupKey
	NonRIS     decimal.Decimal
	RIS        decimal.Decimal
	GrandTotal decimal.Decimal
}

// PivotTable is a detailed three-level pivot: leaf rows, state and brand
// subtotals, and a final grand-total row. Column order is fixed to
// [Non RIS, RIS, Grand Total].
type PivotTable struct {
	Scheme Scheme
	Rows   []*PivotRow
}

// BuildDetailedPivot groups order lines by (brand, fulfillment state, ship
// state), sums shipped quantity split by classification, and adds state
// subtotals, brand subtotals and the grand total. Lines without a brand or
// fulfillment state group under the empty label rather than being dropped.
func BuildDetailedPivot(orders *models.OrderSet, scheme Scheme) *PivotTable {
	leaves := make(map[GroupKey]*PivotRow)
	for _, line := range orders.Lines {
		key := GroupKey{
			Kind:             KeyLeaf,
			Brand:            utils.DereferencePtr(line.Brand, ""),
			FulfillmentState: utils.DereferencePtr(line.FulfillmentState, ""),
			ShipState:        line.ShipState,
		}
		row, ok := leaves[key]
		if !ok {
			row = &PivotRow{Key: key}
			leaves[key] = row
		}
		row.add(scheme.statusOf(line), line.QuantityShipped)
	}

	table := &PivotTable{Scheme: scheme, Rows: make([]*PivotRow, 0, len(leaves))}
	for _, row := range leaves {
		table.Rows = append(table.Rows, row)
	}
	table.addSubtotals()
	return table
}

func (r *PivotRow) add(status models.RISStatus, qty decimal.Decimal) {
	if status == models.StatusRIS {
		r.RIS = r.RIS.Add(qty)
	} else {
		r.NonRIS = r.NonRIS.Add(qty)
	}
	r.GrandTotal = r.GrandTotal.Add(qty)
}

func (r *PivotRow) merge(other *PivotRow) {
	r.NonRIS = r.NonRIS.Add(other.NonRIS)
	r.RIS = r.RIS.Add(other.RIS)
	r.GrandTotal = r.GrandTotal.Add(other.GrandTotal)
}

// addSubtotals rolls leaf rows up into state subtotals, brand subtotals
// and one grand total, then sorts everything except the grand total, which
// stays the final row regardless of label order.
func (t *PivotTable) addSubtotals() {
	stateTotals := make(map[GroupKey]*PivotRow)
	brandTotals := make(map[GroupKey]*PivotRow)
	grand := &PivotRow{Key: GroupKey{Kind: KeyGrandTotal}}

	for _, leaf := range t.Rows {
		stateKey := GroupKey{Kind: KeyStateSubtotal, Brand: leaf.Key.Brand, FulfillmentState: leaf.Key.FulfillmentState}
		row, ok := stateTotals[stateKey]
		if !ok {
			row = &PivotRow{Key: stateKey}
			stateTotals[stateKey] = row
		}
		row.merge(leaf)

		brandKey := GroupKey{Kind: KeyBrandSubtotal, Brand: leaf.Key.Brand}
		row, ok = brandTotals[brandKey]
		if !ok {
			row = &PivotRow{Key: brandKey}
			brandTotals[brandKey] = row
		}
		row.merge(leaf)

		grand.merge(leaf)
	}

	for _, row := range stateTotals {
		t.Rows = append(t.Rows, row)
	}
	for _, row := range brandTotals {
		t.Rows = append(t.Rows, row)
	}
	sort.Slice(t.Rows, func(i, j int) bool {
		return lessGroupKey(t.Rows[i].Key, t.Rows[j].Key)
	})
	t.Rows = append(t.Rows, grand)
}

// lessGroupKey orders rows by their display labels: brand, then the
// fulfillment-state label (subtotal suffixes included, so "Delhi" leaves
// precede "Delhi Total"), then ship state with empty sorting first.
func lessGroupKey(a, b GroupKey) bool {
	ab, af, as := a.Labels()
	bb, bf, bs := b.Labels()
	if ab != bb {
		return ab < bb
	}
	if af != bf {
		return af < bf
	}
	return as < bs
}
