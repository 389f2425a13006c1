package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kuchya/ris-app/config"
	"github.com/kuchya/ris-app/models"
	"github.com/kuchya/ris-app/models/reports"
)

// Batch entry point: runs the full analysis pipeline against three local
// xlsx files and writes the report workbooks next to them. Same core as
// the HTTP service, no server required.
func main() {
	ordersPath := flag.String("orders", "", "Path to the order data workbook (required)")
	fcPath := flag.String("fc", "", "Path to the FC reference workbook (required)")
	pmPath := flag.String("pm", "", "Path to the product-master workbook (required)")
	outDir := flag.String("out", ".", "Directory to write report workbooks into")
	flag.Parse()

	if *ordersPath == "" || *fcPath == "" || *pmPath == "" {
		fmt.Fprintln(os.Stderr, "-orders, -fc and -pm are all required")
		flag.Usage()
		os.Exit(2)
	}

	config.LoadEnv()
	localFCMap, err := config.GetLocalFCMap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	orders, err := readWorkbook(*ordersPath, "orders")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fc, err := readWorkbook(*fcPath, "FC")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	pm, err := readWorkbook(*pmPath, "PM")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	result, err := reports.RunAnalysis(context.Background(), orders, fc, pm, localFCMap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	outputs := []string{"state-based", "inventory-placement", "combined", "processed-data"}
	for _, name := range outputs {
		f, err := reports.ReportWorkbook(result, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build %s report: %v\n", name, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, reportFilename(name))
		if err := f.SaveAs(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Println("wrote", path)
	}

	fmt.Printf("processed %d order lines (brand join: %v)\n", len(result.Orders.Lines), result.BrandJoined)
}

func readWorkbook(path, name string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %v", path, err)
	}
	defer f.Close()
	return models.ReadDataset(f, name)
}

func reportFilename(name string) string {
	switch name {
	case "state-based":
		return "state_based_ris_analysis.xlsx"
	case "inventory-placement":
		return "inventory_placement_analysis.xlsx"
	case "combined":
		return "complete_ris_analysis_report.xlsx"
	default:
		return "processed_data.xlsx"
	}
}
