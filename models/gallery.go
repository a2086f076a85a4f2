package models

// GalleryImage is a photo shown on the gallery page.
// When ImageKey is set the image lives in object storage and URL is
// generated on read.
type GalleryImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	ImageKey    string `json:"imageKey,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}
