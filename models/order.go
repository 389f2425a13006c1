package models

import (
	"fmt"

	"github.com/kuchya/ris-app/utils"
	"github.com/shopspring/decimal"
)

// Column names as they appear in the input workbooks.
const (
	ColFulfillmentCenterId = "fulfillment-center-id"
	ColShipState           = "ship-state"
	ColQuantityShipped     = "quantity-shipped"
	ColSku                 = "sku"
	ColReceiveCentre       = "Inferred_Receive_Centre"

	ColFC      = "FC"
	ColState   = "State"
	ColCluster = "Cluster"
)

// RISStatus is a binary classification label for one order line.
type RISStatus string

const (
	StatusRIS    RISStatus = "RIS"
	StatusNonRIS RISStatus = "Non RIS"
)

// OrderLine is one row of the order dataset, enriched in place as it moves
// through join and classification. Raw keeps the source row for passthrough
// export; ShipStateOriginal is captured once at parse time and never
// overwritten, while ShipState may be corrected to a canonical state name.
type OrderLine struct {
	Raw []string

	FulfillmentCenterId   string
	ShipState             string
	ShipStateOriginal     string
	Sku                   string
	QuantityShipped       decimal.Decimal
	InferredReceiveCentre string

	FulfillmentState *string
	Cluster          *string
	Brand            *string

	RISStatus  RISStatus
	RISByTable RISStatus
}

// OrderSet is the full order dataset plus the capability flags that decide
// which optional enrichments apply.
type OrderSet struct {
	Columns []string
	Lines   []*OrderLine

	HasSku           bool
	HasReceiveCentre bool
}

// ParseOrders validates the order dataset schema and converts rows into
// order lines. Required columns are checked up front and all missing ones
// are reported together; a non-numeric quantity aborts the run with the
// offending row number. Blank quantities stay zero (summing is the
// aggregator's concern, imputation is nobody's).
func ParseOrders(ds *Dataset) (*OrderSet, error) {
	missing := ds.MissingColumns(ColFulfillmentCenterId, ColShipState, ColQuantityShipped)
	if len(missing) > 0 {
		return nil, utils.NewSchemaError(ds.Name, missing)
	}

	fcIdx := ds.ColumnIndex(ColFulfillmentCenterId)
	stateIdx := ds.ColumnIndex(ColShipState)
	qtyIdx := ds.ColumnIndex(ColQuantityShipped)
	skuIdx := ds.ColumnIndex(ColSku)
	rcIdx := ds.ColumnIndex(ColReceiveCentre)

	set := &OrderSet{
		Columns:          ds.Columns,
		Lines:            make([]*OrderLine, 0, len(ds.Rows)),
		HasSku:           skuIdx >= 0,
		HasReceiveCentre: rcIdx >= 0,
	}

	for i, row := range ds.Rows {
		line := &OrderLine{
			Raw:                 row,
			FulfillmentCenterId: row[fcIdx],
			ShipState:           row[stateIdx],
			ShipStateOriginal:   row[stateIdx],
		}
		if qty := row[qtyIdx]; qty != "" {
			parsed, err := utils.ParseDecimal(qty)
			if err != nil {
				return nil, fmt.Errorf("could not parse %s in row %d: %v", ColQuantityShipped, i+2, err)
			}
			line.QuantityShipped = parsed
		}
		if skuIdx >= 0 {
			line.Sku = row[skuIdx]
		}
		if rcIdx >= 0 {
			line.InferredReceiveCentre = row[rcIdx]
		}
		set.Lines = append(set.Lines, line)
	}
	return set, nil
}

// FulfillmentCenter is one row of the FC reference data: the source of
// truth for canonical state names.
type FulfillmentCenter struct {
	Code    string
	State   string
	Cluster string
}

// ParseFulfillmentCenters validates the FC reference schema (FC, State,
// Cluster) and converts rows. All missing columns are reported together.
func ParseFulfillmentCenters(ds *Dataset) ([]FulfillmentCenter, error) {
	missing := ds.MissingColumns(ColFC, ColState, ColCluster)
	if len(missing) > 0 {
		return nil, utils.NewSchemaError(ds.Name, missing)
	}

	codeIdx := ds.ColumnIndex(ColFC)
	stateIdx := ds.ColumnIndex(ColState)
	clusterIdx := ds.ColumnIndex(ColCluster)

	centers := make([]FulfillmentCenter, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		centers = append(centers, FulfillmentCenter{
			Code:    row[codeIdx],
			State:   row[stateIdx],
			Cluster: row[clusterIdx],
		})
	}
	return centers, nil
}
