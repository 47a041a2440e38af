package dto

import (
	"encoding/json"
	"fmt"

	"github.com/mdYeasin2001/hire-vibe-server/internal/api/model"
)

// ExtraFields re-decodes a raw JSON body and strips the known keys, leaving
// the free-form fields that are stored opaquely.
func ExtraFields(raw []byte, known []string) (model.Extra, error) {
	extra := model.Extra{}
	if err := json.Unmarshal(raw, &extra); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	for _, k := range known {
		delete(extra, k)
	}
	return extra, nil
}
