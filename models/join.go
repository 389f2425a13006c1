package models

import (
	"fmt"

	"github.com/kuchya/ris-app/utils"
)

// JoinFulfillmentCenters left-joins order lines against the FC reference on
// normalized center codes. Unmatched lines keep nil state and cluster; they
// are never dropped. Duplicate normalized codes fan out: a line matching n
// reference rows becomes n lines, standard left-join cardinality.
func JoinFulfillmentCenters(orders *OrderSet, centers []FulfillmentCenter) {
	index := make(map[string][]FulfillmentCenter, len(centers))
	for _, fc := range centers {
		key := JoinKeyNormalize(fc.Code)
		if key == JoinKeyMissing {
			continue
		}
		index[key] = append(index[key], fc)
	}

	joined := make([]*OrderLine, 0, len(orders.Lines))
	for _, line := range orders.Lines {
		matches := index[JoinKeyNormalize(line.FulfillmentCenterId)]
		if len(matches) == 0 {
			line.FulfillmentState = nil
			line.Cluster = nil
			joined = append(joined, line)
			continue
		}
		line.FulfillmentState = &matches[0].State
		line.Cluster = &matches[0].Cluster
		joined = append(joined, line)
		for i := 1; i < len(matches); i++ {
			dup := *line
			dup.FulfillmentState = &matches[i].State
			dup.Cluster = &matches[i].Cluster
			joined = append(joined, &dup)
		}
	}
	orders.Lines = joined
}

// ProductMasterSlice describes the positional contract for extracting
// sku -> brand pairs from the product-master workbook: a fixed-width column
// window with the key and brand at known offsets inside it. Fragile by
// nature, so it is explicit configuration rather than magic numbers.
type ProductMasterSlice struct {
	Start       int
	Width       int
	KeyOffset   int
	BrandOffset int
}

// DefaultProductMasterSlice matches the product-master layout in use:
// columns C..G hold [key, _, _, _, brand].
func DefaultProductMasterSlice() ProductMasterSlice {
	return ProductMasterSlice{Start: 2, Width: 5, KeyOffset: 0, BrandOffset: 4}
}

// JoinProductMaster attaches brands to order lines by exact sku equality
// (no normalization). The join only runs when the order data has a sku
// column; the returned flag tells downstream reporting whether brand
// enrichment happened at all. The product-master table must be wide enough
// for the configured slice.
func JoinProductMaster(orders *OrderSet, pm *Dataset, slice ProductMasterSlice) (bool, error) {
	if !orders.HasSku {
		return false, nil
	}

	needed := slice.Start + slice.Width
	if len(pm.Columns) < needed {
		return false, fmt.Errorf("%s file has %d columns; brand extraction needs at least %d", pm.Name, len(pm.Columns), needed)
	}

	keyIdx := slice.Start + slice.KeyOffset
	brandIdx := slice.Start + slice.BrandOffset

	brands := make(map[string]string, len(pm.Rows))
	for _, row := range pm.Rows {
		key := row[keyIdx]
		if key == "" {
			continue
		}
		// First occurrence wins; duplicate skus in the product master
		// must not multiply order lines.
		if _, ok := brands[key]; ok {
			continue
		}
		brands[key] = row[brandIdx]
	}

	for _, line := range orders.Lines {
		if brand, ok := brands[line.Sku]; ok {
			line.Brand = utils.NilIfEmpty(brand)
		}
	}
	return true, nil
}
