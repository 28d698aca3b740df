package entities

// StagedMedia points at a local image file prepared for upload. Temp marks
// files owned by the stager that must be released after the upload finishes.
type StagedMedia struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Temp   bool   `json:"temp"`
}
