package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/kuchya/ris-app/utils"
)

func orderDataset(rows [][]string) *Dataset {
	return NewDataset("orders", []string{
		ColFulfillmentCenterId, ColShipState, ColQuantityShipped, ColSku, ColReceiveCentre,
	}, rows)
}

func TestParseOrders_MissingColumnsNamed(t *testing.T) {
	ds := NewDataset("orders", []string{ColShipState}, nil)
	_, err := ParseOrders(ds)
	if err == nil {
		t.Fatal("expected schema error")
	}
	var se *utils.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %T: %v", err, err)
	}
	if len(se.MissingColumns) != 2 {
		t.Fatalf("expected 2 missing columns, got %v", se.MissingColumns)
	}
	for _, col := range []string{ColFulfillmentCenterId, ColQuantityShipped} {
		if !strings.Contains(err.Error(), col) {
			t.Fatalf("error %q does not name missing column %q", err.Error(), col)
		}
	}
}

func TestParseOrders_BadQuantityFailsWithRow(t *testing.T) {
	ds := orderDataset([][]string{
		{"DED3", "Delhi", "10", "SKU1", ""},
		{"DED3", "Delhi", "ten", "SKU1", ""},
	})
	_, err := ParseOrders(ds)
	if err == nil {
		t.Fatal("expected parse error for non-numeric quantity")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Fatalf("error should name the offending row: %v", err)
	}
}

func TestParseOrders_BlankQuantityStaysZero(t *testing.T) {
	ds := orderDataset([][]string{
		{"DED3", "Delhi", "", "SKU1", ""},
	})
	set, err := ParseOrders(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.Lines[0].QuantityShipped.IsZero() {
		t.Fatalf("blank quantity expected zero, got %s", set.Lines[0].QuantityShipped)
	}
}

func TestParseOrders_CapturesOriginalShipState(t *testing.T) {
	ds := orderDataset([][]string{
		{"DED3", " delhi ", "1", "", ""},
	})
	set, err := ParseOrders(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := set.Lines[0]
	if line.ShipStateOriginal != " delhi " {
		t.Fatalf("original ship state not preserved: %q", line.ShipStateOriginal)
	}
	line.ShipState = "Delhi"
	if line.ShipStateOriginal != " delhi " {
		t.Fatal("correcting ship state must not touch the original")
	}
}

func TestParseFulfillmentCenters_MissingCluster(t *testing.T) {
	ds := NewDataset("FC", []string{ColFC, ColState}, [][]string{{"DED3", "Delhi"}})
	_, err := ParseFulfillmentCenters(ds)
	if err == nil {
		t.Fatal("expected schema error")
	}
	if !utils.IsSchemaError(err) {
		t.Fatalf("expected SchemaError, got %T", err)
	}
	if !strings.Contains(err.Error(), ColCluster) {
		t.Fatalf("error %q does not name %q", err.Error(), ColCluster)
	}
}

func TestJoinFulfillmentCenters(t *testing.T) {
	ds := orderDataset([][]string{
		{"ded3", "Delhi", "10", "", ""},
		{" DED3 ", "Delhi", "5", "", ""},
		{"ZZZ9", "Delhi", "2", "", ""},
		{"", "Delhi", "1", "", ""},
	})
	set, err := ParseOrders(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	centers := []FulfillmentCenter{{Code: "DED3", State: "Delhi", Cluster: "North"}}
	JoinFulfillmentCenters(set, centers)

	if got := utils.DereferencePtr(set.Lines[0].FulfillmentState, ""); got != "Delhi" {
		t.Fatalf("lowercase code should join: got %q", got)
	}
	if got := utils.DereferencePtr(set.Lines[1].Cluster, ""); got != "North" {
		t.Fatalf("padded code should join: got %q", got)
	}
	if set.Lines[2].FulfillmentState != nil {
		t.Fatal("unmatched line should keep nil fulfillment state")
	}
	if set.Lines[3].FulfillmentState != nil {
		t.Fatal("blank key must not match anything")
	}
	if len(set.Lines) != 4 {
		t.Fatalf("no line should be dropped: got %d", len(set.Lines))
	}
}

func TestJoinFulfillmentCenters_DuplicateKeysFanOut(t *testing.T) {
	ds := orderDataset([][]string{
		{"DED3", "Delhi", "10", "", ""},
	})
	set, err := ParseOrders(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	centers := []FulfillmentCenter{
		{Code: "DED3", State: "Delhi", Cluster: "North"},
		{Code: "ded3 ", State: "Haryana", Cluster: "NCR"},
	}
	JoinFulfillmentCenters(set, centers)

	if len(set.Lines) != 2 {
		t.Fatalf("expected left-join fan-out to 2 lines, got %d", len(set.Lines))
	}
	if utils.DereferencePtr(set.Lines[0].FulfillmentState, "") != "Delhi" ||
		utils.DereferencePtr(set.Lines[1].FulfillmentState, "") != "Haryana" {
		t.Fatal("fan-out lines should carry each matching reference row")
	}
}

func TestJoinProductMaster(t *testing.T) {
	pm := NewDataset("PM", []string{"A", "B", "Key", "C2", "C3", "C4", "Brand"}, [][]string{
		{"x", "x", "SKU1", "", "", "", "Acme"},
		{"x", "x", "SKU2", "", "", "", "Globex"},
		{"x", "x", "SKU1", "", "", "", "Duplicate"},
	})
	ds := orderDataset([][]string{
		{"DED3", "Delhi", "1", "SKU1", ""},
		{"DED3", "Delhi", "1", "SKU9", ""},
	})
	set, err := ParseOrders(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined, err := JoinProductMaster(set, pm, DefaultProductMasterSlice())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !joined {
		t.Fatal("expected brand join to run")
	}
	if got := utils.DereferencePtr(set.Lines[0].Brand, ""); got != "Acme" {
		t.Fatalf("expected first occurrence to win, got %q", got)
	}
	if set.Lines[1].Brand != nil {
		t.Fatal("unmatched sku should keep nil brand")
	}
}

func TestJoinProductMaster_SkippedWithoutSkuColumn(t *testing.T) {
	ds := NewDataset("orders", []string{ColFulfillmentCenterId, ColShipState, ColQuantityShipped}, [][]string{
		{"DED3", "Delhi", "1"},
	})
	set, err := ParseOrders(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pm := NewDataset("PM", []string{"A", "B", "Key", "C2", "C3", "C4", "Brand"}, nil)

	joined, err := JoinProductMaster(set, pm, DefaultProductMasterSlice())
	if err != nil {
		t.Fatalf("skipping the join must not fail: %v", err)
	}
	if joined {
		t.Fatal("join should report itself skipped without a sku column")
	}
}

func TestJoinProductMaster_TooNarrow(t *testing.T) {
	ds := orderDataset([][]string{{"DED3", "Delhi", "1", "SKU1", ""}})
	set, err := ParseOrders(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pm := NewDataset("PM", []string{"A", "B", "Key"}, nil)

	if _, err := JoinProductMaster(set, pm, DefaultProductMasterSlice()); err == nil {
		t.Fatal("expected error for a product master narrower than the slice")
	}
}
