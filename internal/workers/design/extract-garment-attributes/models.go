// internal/workers/design/extract-garment-attributes/models.go
package extractgarmentattributes

import "garment-workers/internal/garment"

type Input struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type Output struct {
	Attributes     garment.SparseAttributes `json:"attributes"`
	KnownFields    []string                 `json:"knownFields"`
	// GarmentOptions feeds the garment type picker on the designer form.
	GarmentOptions []string                 `json:"garmentOptions"`
}
