package models

// BaseItemAnnotation is the structured description returned by the vision model for one
// product photo.
type BaseItemAnnotation struct {
	Title        string   `json:"title"`
	Elements     string   `json:"elements"`
	PrimaryTheme string   `json:"color"`
	Bullets      []string `json:"bp"`
}
