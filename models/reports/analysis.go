package reports

import (
	"context"
	"fmt"

	"github.com/kuchya/ris-app/config"
	"github.com/kuchya/ris-app/models"
	"github.com/kuchya/ris-app/utils"
	"github.com/sirupsen/logrus"
)

// AnalysisResult is the complete output of one processing run: the
// enriched order dataset plus the four report tables, two per
// classification scheme.
type AnalysisResult struct {
	Orders      *models.OrderSet
	BrandJoined bool

	StateDetailed         *PivotTable
	StateBrandSummary     *BrandSummary
	InventoryDetailed     *PivotTable
	InventoryBrandSummary *BrandSummary
}

// RunAnalysis executes the whole pipeline for one run: schema validation,
// reference joins, ship-state correction, both classifications, and the
// four aggregate tables. Schema problems surface before any join or
// classification work; every other failure is reported once, from here,
// and a failed run produces no output at all.
func RunAnalysis(ctx context.Context, orderDS, fcDS, pmDS *models.Dataset, localFCMap map[string][]string) (result *AnalysisResult, err error) {
	logger := config.GetLogger()

	defer func() {
		if r := recover(); r != nil {
			config.LogError(logger, "reports", "RunAnalysis", "panic during analysis", nil, fmt.Errorf("%v", r))
			result = nil
			err = fmt.Errorf("analysis failed: %v", r)
		}
	}()

	// Validate every input schema before touching any data.
	orders, err := models.ParseOrders(orderDS)
	if err != nil {
		return nil, err
	}
	centers, err := models.ParseFulfillmentCenters(fcDS)
	if err != nil {
		return nil, err
	}

	models.JoinFulfillmentCenters(orders, centers)

	canon := models.BuildCanonicalStateMap(centers)
	for _, line := range orders.Lines {
		line.ShipState = models.SafeCorrect(line.ShipStateOriginal, canon)
	}

	brandJoined, err := models.JoinProductMaster(orders, pmDS, models.DefaultProductMasterSlice())
	if err != nil {
		return nil, err
	}

	classifier := models.NewClassifier(localFCMap)
	classifier.ClassifyAll(orders)

	result = &AnalysisResult{
		Orders:      orders,
		BrandJoined: brandJoined,

		StateDetailed:         BuildDetailedPivot(orders, SchemeStateMatch),
		StateBrandSummary:     BuildBrandSummary(orders, SchemeStateMatch),
		InventoryDetailed:     BuildDetailedPivot(orders, SchemeLocalMapping),
		InventoryBrandSummary: BuildBrandSummary(orders, SchemeLocalMapping),
	}

	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	runId, _ := utils.GetRunIdFromContext(ctx)
	logger.WithFields(logrus.Fields{
		"correlation_id": cid,
		"run_id":         runId,
		"order_lines":    len(orders.Lines),
		"fc_rows":        len(centers),
		"brand_joined":   brandJoined,
	}).Info("[analysis.complete]")

	return result, nil
}
