// internal/workers/design/optimize-garment-parameters/models.go
package optimizegarmentparameters

import "garment-workers/internal/garment"

type Input struct {
	Params garment.Record `json:"params"`
	Mode   string         `json:"mode,omitempty"`
}

type Output struct {
	Parameters      garment.DenseParameters `json:"parameters"`
	Mode            string                  `json:"mode"`
	DefaultedFields []string                `json:"defaultedFields"`
}
