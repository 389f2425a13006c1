package reports

import (
	"fmt"

	"github.com/kuchya/ris-app/models"
	"github.com/kuchya/ris-app/utils"
	"github.com/xuri/excelize/v2"
)

// Sheet names, matching the workbooks users already know.
const (
	SheetBrandSummary      = "Brand Summary"
	SheetDetailedAnalysis  = "Detailed Analysis"
	SheetProcessedData     = "Processed Data"
	SheetStateBrandSummary = "State-Based Brand Summary"
	SheetStateDetailed     = "State-Based Detailed"
	SheetInvBrandSummary   = "Inventory Brand Summary"
	SheetInvDetailed       = "Inventory Detailed"
)

// Extra columns appended to the processed-data export.
const (
	colShipStateOriginal = "ship-state_original"
	colFulfillmentState  = "fulfillment_state"
	colClusterOut        = "cluster"
	colBrandOut          = "Brand"
	colRISStatus         = "RIS Status"
	colRISByTable        = "RIS_by_Table"
)

func totalRowStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
	})
}

func setRow(f *excelize.File, sheet string, rowNo int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, rowNo, width, styleID int) error {
	first, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, rowNo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, styleID)
}

// writePivotSheet renders a detailed pivot: three label columns, the fixed
// [Non RIS, RIS, Grand Total] value columns, subtotal and total rows bold
// on a grey fill.
func writePivotSheet(f *excelize.File, sheet string, t *PivotTable) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Brand", "Fulfillment State", "Ship State", "Non RIS", "RIS", "Grand Total"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	emphasis, err := totalRowStyle(f)
	if err != nil {
		return err
	}

	for i, row := range t.Rows {
		rowNo := i + 2
		brand, fstate, sstate := row.Key.Labels()
		values := []interface{}{
			brand, fstate, sstate,
			row.NonRIS.InexactFloat64(),
			row.RIS.InexactFloat64(),
			row.GrandTotal.InexactFloat64(),
		}
		if err := setRow(f, sheet, rowNo, values); err != nil {
			return err
		}
		if row.Key.Kind != KeyLeaf {
			if err := styleRow(f, sheet, rowNo, len(values), emphasis); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeBrandSummarySheet renders a brand summary with its percentage
// columns; the Grand Total row gets the emphasis style.
func writeBrandSummarySheet(f *excelize.File, sheet string, s *BrandSummary) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Brand", "Non RIS", "RIS", "Grand Total", "Non RIS%", "RIS%"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	emphasis, err := totalRowStyle(f)
	if err != nil {
		return err
	}

	for i, row := range s.Rows {
		rowNo := i + 2
		values := []interface{}{
			row.Brand,
			row.NonRIS.InexactFloat64(),
			row.RIS.InexactFloat64(),
			row.GrandTotal.InexactFloat64(),
			row.NonRISPct.InexactFloat64(),
			row.RISPct.InexactFloat64(),
		}
		if err := setRow(f, sheet, rowNo, values); err != nil {
			return err
		}
		if row.IsGrandTotal {
			if err := styleRow(f, sheet, rowNo, len(values), emphasis); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeProcessedSheet renders the enriched order dataset: every original
// column (ship-state corrected in place), then the pristine ship state and
// the enrichment/classification columns.
func writeProcessedSheet(f *excelize.File, sheet string, result *AnalysisResult) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	orders := result.Orders
	header := make([]interface{}, 0, len(orders.Columns)+6)
	for _, c := range orders.Columns {
		header = append(header, c)
	}
	header = append(header, colShipStateOriginal, colFulfillmentState, colClusterOut)
	if result.BrandJoined {
		header = append(header, colBrandOut)
	}
	header = append(header, colRISStatus, colRISByTable)
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	shipStateIdx := -1
	for i, c := range orders.Columns {
		if c == models.ColShipState {
			shipStateIdx = i
		}
	}

	for i, line := range orders.Lines {
		values := make([]interface{}, 0, len(header))
		for j, cell := range line.Raw {
			if j == shipStateIdx {
				values = append(values, line.ShipState)
				continue
			}
			values = append(values, cell)
		}
		values = append(values,
			line.ShipStateOriginal,
			utils.DereferencePtr(line.FulfillmentState, ""),
			utils.DereferencePtr(line.Cluster, ""),
		)
		if result.BrandJoined {
			values = append(values, utils.DereferencePtr(line.Brand, ""))
		}
		values = append(values, string(line.RISStatus), string(line.RISByTable))
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func newWorkbook() *excelize.File {
	return excelize.NewFile()
}

func finishWorkbook(f *excelize.File) error {
	// Drop the implicit default sheet; all content lives on named sheets.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	index, err := f.GetSheetIndex(f.GetSheetList()[0])
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	return nil
}

// BuildSchemeWorkbook assembles the per-scheme export: brand summary first,
// detailed analysis second.
func BuildSchemeWorkbook(summary *BrandSummary, detailed *PivotTable) (*excelize.File, error) {
	f := newWorkbook()
	if err := writeBrandSummarySheet(f, SheetBrandSummary, summary); err != nil {
		return nil, err
	}
	if err := writePivotSheet(f, SheetDetailedAnalysis, detailed); err != nil {
		return nil, err
	}
	if err := finishWorkbook(f); err != nil {
		return nil, err
	}
	return f, nil
}

// BuildProcessedWorkbook assembles the enriched-dataset export.
func BuildProcessedWorkbook(result *AnalysisResult) (*excelize.File, error) {
	f := newWorkbook()
	if err := writeProcessedSheet(f, SheetProcessedData, result); err != nil {
		return nil, err
	}
	if err := finishWorkbook(f); err != nil {
		return nil, err
	}
	return f, nil
}

// BuildCombinedWorkbook assembles the complete report: both schemes plus
// the processed dataset.
func BuildCombinedWorkbook(result *AnalysisResult) (*excelize.File, error) {
	f := newWorkbook()
	if err := writeBrandSummarySheet(f, SheetStateBrandSummary, result.StateBrandSummary); err != nil {
		return nil, err
	}
	if err := writePivotSheet(f, SheetStateDetailed, result.StateDetailed); err != nil {
		return nil, err
	}
	if err := writeBrandSummarySheet(f, SheetInvBrandSummary, result.InventoryBrandSummary); err != nil {
		return nil, err
	}
	if err := writePivotSheet(f, SheetInvDetailed, result.InventoryDetailed); err != nil {
		return nil, err
	}
	if err := writeProcessedSheet(f, SheetProcessedData, result); err != nil {
		return nil, err
	}
	if err := finishWorkbook(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ReportWorkbook builds the named downloadable workbook for a finished run.
func ReportWorkbook(result *AnalysisResult, name string) (*excelize.File, error) {
	switch name {
	case "state-based":
		return BuildSchemeWorkbook(result.StateBrandSummary, result.StateDetailed)
	case "inventory-placement":
		return BuildSchemeWorkbook(result.InventoryBrandSummary, result.InventoryDetailed)
	case "processed-data":
		return BuildProcessedWorkbook(result)
	case "combined":
		return BuildCombinedWorkbook(result)
	default:
		return nil, fmt.Errorf("unknown report %q", name)
	}
}
