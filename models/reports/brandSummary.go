package reports

import (
	"sort"

	"github.com/kuchya/ris-app/models"
	"github.com/kuchya/ris-app/utils"
	"github.com/shopspring/decimal"
)

// BrandSummaryRow is one row of the flat brand-level report. Percentages
// are fractions in [0,1] and stay zero when the row total is zero; an
// undefined ratio must never leak into a report.
type BrandSummaryRow struct {
	Brand        string
	IsGrandTotal bool
	NonRIS       decimal.Decimal
	RIS          decimal.Decimal
	GrandTotal   decimal.Decimal
	NonRISPct    decimal.Decimal
	RISPct       decimal.Decimal
}

type BrandSummary struct {
	Scheme Scheme
	Rows   []*BrandSummaryRow
}

// BuildBrandSummary groups order lines by brand, sums shipped quantity
// split by classification, appends a Grand Total row and derives the
// percentage columns.
func BuildBrandSummary(orders *models.OrderSet, scheme Scheme) *BrandSummary {
	byBrand := make(map[string]*BrandSummaryRow)
	grand := &BrandSummaryRow{Brand: "Grand Total", IsGrandTotal: true}

	for _, line := range orders.Lines {
		brand := utils.DereferencePtr(line.Brand, "")
		row, ok := byBrand[brand]
		if !ok {
			row = &BrandSummaryRow{Brand: brand}
			byBrand[brand] = row
		}
		qty := line.QuantityShipped
		if scheme.statusOf(line) == models.StatusRIS {
			row.RIS = row.RIS.Add(qty)
			grand.RIS = grand.RIS.Add(qty)
		} else {
			row.NonRIS = row.NonRIS.Add(qty)
			grand.NonRIS = grand.NonRIS.Add(qty)
		}
		row.GrandTotal = row.GrandTotal.Add(qty)
		grand.GrandTotal = grand.GrandTotal.Add(qty)
	}

	summary := &BrandSummary{Scheme: scheme, Rows: make([]*BrandSummaryRow, 0, len(byBrand)+1)}
	for _, row := range byBrand {
		summary.Rows = append(summary.Rows, row)
	}
	sort.Slice(summary.Rows, func(i, j int) bool {
		return summary.Rows[i].Brand < summary.Rows[j].Brand
	})
	summary.Rows = append(summary.Rows, grand)

	for _, row := range summary.Rows {
		row.derivePercentages()
	}
	return summary
}

func (r *BrandSummaryRow) derivePercentages() {
	if r.GrandTotal.IsZero() {
		r.NonRISPct = decimal.Zero
		r.RISPct = decimal.Zero
		return
	}
	r.NonRISPct = r.NonRIS.Div(r.GrandTotal)
	r.RISPct = r.RIS.Div(r.GrandTotal)
}
