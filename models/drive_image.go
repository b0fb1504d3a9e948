package models

// DriveImage represents a product photo stored in Google Drive
type DriveImage struct {
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType"`
	ImageURL    string `json:"imageUrl"`
	SKUPrefix   string `json:"skuPrefix"`
}
