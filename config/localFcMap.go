package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Local FC mapping: which fulfillment centers count as "local" to a given
// receive centre. This is deployment configuration, not derived from
// uploaded data.
//
// Override via env:
// - LOCAL_FC_MAP='{"DED3":["DEL4","DEL5","DED4"], ...}'
var defaultLocalFCMap = map[string][]string{
	"DED3": {"DEL4", "DEL5", "DED4"},
	"DED5": {"DEL4", "DEL5", "DED4"},
	"ISK3": {"BOM5", "BOM7", "PNQ3"},
	"BLR4": {"BLR7", "BLR8"},
}

type localFCMapConfig struct {
	Mapping map[string][]string `validate:"required,min=1,dive,required,min=1,dive,required"`
}

var (
	localFCMapOnce sync.Once
	localFCMap     map[string][]string
	localFCMapErr  error
)

// GetLocalFCMap returns the receive-centre -> local fulfillment centers
// mapping. The returned map is shared; callers must not mutate it.
func GetLocalFCMap() (map[string][]string, error) {
	localFCMapOnce.Do(func() {
		localFCMap, localFCMapErr = loadLocalFCMap(os.Getenv("LOCAL_FC_MAP"))
	})
	return localFCMap, localFCMapErr
}

func loadLocalFCMap(raw string) (map[string][]string, error) {
	mapping := defaultLocalFCMap
	if strings.TrimSpace(raw) != "" {
		parsed := map[string][]string{}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil, fmt.Errorf("invalid LOCAL_FC_MAP: %v", err)
		}
		mapping = parsed
	}

	validate := validator.New()
	if err := validate.Struct(localFCMapConfig{Mapping: mapping}); err != nil {
		return nil, fmt.Errorf("invalid local FC mapping: %v", err)
	}
	return mapping, nil
}
