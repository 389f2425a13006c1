package models

import "strings"

// Classifier assigns the two independent RIS labels. The local FC mapping
// is injected at construction and copied into a membership index, so the
// classifier never depends on mutable configuration.
type Classifier struct {
	localMap map[string]map[string]struct{}
}

func NewClassifier(localFCMap map[string][]string) *Classifier {
	index := make(map[string]map[string]struct{}, len(localFCMap))
	for rc, centers := range localFCMap {
		members := make(map[string]struct{}, len(centers))
		for _, fc := range centers {
			members[JoinKeyNormalize(fc)] = struct{}{}
		}
		index[JoinKeyNormalize(rc)] = members
	}
	return &Classifier{localMap: index}
}

// ByStateMatch labels a line RIS when the pristine ship state equals the
// joined fulfillment state after trimming and removing internal spaces.
// The comparison is case-sensitive and deliberately uses the pre-correction
// ship state: the raw text is the ground truth for matching, the corrected
// value is for display only. A line with no fulfillment state is Non RIS.
func (c *Classifier) ByStateMatch(line *OrderLine) RISStatus {
	if line.FulfillmentState == nil {
		return StatusNonRIS
	}
	if NormalizeForCompare(line.ShipStateOriginal) == NormalizeForCompare(*line.FulfillmentState) {
		return StatusRIS
	}
	return StatusNonRIS
}

// ByLocalMapping labels a line RIS when its fulfillment center is declared
// local to the line's inferred receive centre. Membership is exact string
// equality after trimming and case folding. Lines with a blank or unmapped
// receive centre are Non RIS regardless of fulfillment center.
func (c *Classifier) ByLocalMapping(line *OrderLine) RISStatus {
	rc := strings.TrimSpace(line.InferredReceiveCentre)
	if rc == "" {
		return StatusNonRIS
	}
	members, ok := c.localMap[JoinKeyNormalize(rc)]
	if !ok {
		return StatusNonRIS
	}
	if _, local := members[JoinKeyNormalize(line.FulfillmentCenterId)]; local {
		return StatusRIS
	}
	return StatusNonRIS
}

// ClassifyAll computes both labels for every line. The two rules are
// stateless per row; no ordering dependency between lines.
func (c *Classifier) ClassifyAll(orders *OrderSet) {
	for _, line := range orders.Lines {
		line.RISStatus = c.ByStateMatch(line)
		line.RISByTable = c.ByLocalMapping(line)
	}
}
