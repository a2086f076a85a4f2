package models

// UpdateEntry is one changelog entry shown on the updates page
type UpdateEntry struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Date        string `json:"date"`
}
