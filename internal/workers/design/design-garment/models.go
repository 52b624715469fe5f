// internal/workers/design/design-garment/models.go
package designgarment

import "garment-workers/internal/garment"

type Input struct {
	Text           string         `json:"text"`
	ImageBase64    string         `json:"imageBase64,omitempty"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	ExplicitFields garment.Record `json:"explicitFields,omitempty"`
	// LockedFields switches Merge to lock mode when present, even if empty.
	LockedFields []string `json:"lockedFields"`
	Mode         string   `json:"mode,omitempty"`
}

type Output struct {
	Attributes  garment.SparseAttributes `json:"attributes"`
	Parameters  garment.DenseParameters  `json:"parameters"`
	Warnings    []garment.Warning        `json:"warnings"`
	HasWarnings bool                     `json:"hasWarnings"`
	Sources     map[string]string        `json:"sources"`
	Mode        string                   `json:"mode"`
	CacheHit    bool                     `json:"cacheHit"`
}
