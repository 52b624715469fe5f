// internal/workers/design/check-measurements/models.go
package checkmeasurements

import "garment-workers/internal/garment"

type Input struct {
	Parameters garment.DenseParameters `json:"parameters"`
}

type Output struct {
	Warnings    []garment.Warning `json:"warnings"`
	HasWarnings bool              `json:"hasWarnings"`
}
