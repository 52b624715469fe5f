// internal/workers/design/create-design-record/models.go
package createdesignrecord

import "garment-workers/internal/garment"

// Input keeps parameters untyped so the contract check sees exactly what the
// process carried, including missing fields.
type Input struct {
	Parameters map[string]interface{} `json:"parameters"`
	SourceText string                 `json:"sourceText,omitempty"`
	Mode       string                 `json:"mode,omitempty"`
	DesignerID string                 `json:"designerId,omitempty"`
}

type Output struct {
	DesignID  string `json:"designId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// designDocument is what the search index and the event topic receive.
type designDocument struct {
	DesignID      string                  `json:"designId"`
	DesignerID    string                  `json:"designerId,omitempty"`
	Mode          string                  `json:"mode"`
	GarmentType   string                  `json:"garmentType"`
	Fit           string                  `json:"fit"`
	Color         string                  `json:"color"`
	Fabric        string                  `json:"fabric"`
	StyleKeywords []string                `json:"styleKeywords"`
	SourceText    string                  `json:"sourceText,omitempty"`
	CreatedAt     string                  `json:"createdAt"`
	Parameters    garment.DenseParameters `json:"parameters"`
}
