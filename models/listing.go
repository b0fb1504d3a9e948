package models

// ItemInput is one product photo to annotate and expand into rows.
type ItemInput struct {
	Prefix   string
	FileName string
	Image    []byte
	MimeType string
	Hint     string
}

// FillRequest carries everything needed to fill one listing template
type FillRequest struct {
	Template    []byte
	Items       []ItemInput
	Brand       string
	Variants    []VariantSpec
	KeywordPool string
}

// ItemOutcome reports what happened to a single item of a fill request.
type ItemOutcome struct {
	Prefix      string `json:"prefix"`
	FileName    string `json:"fileName,omitempty"`
	StartRow    int    `json:"startRow,omitempty"`
	RowsWritten int    `json:"rowsWritten"`
	Skipped     bool   `json:"skipped"`
	Error       string `json:"error,omitempty"`
}

// FillResult is returned after a template has been filled and serialized.
type FillResult struct {
	JobID       string        `json:"jobId"`
	Workbook    []byte        `json:"-"`
	Rows        []OutputRow   `json:"rows"`
	RowsWritten int           `json:"rowsWritten"`
	Items       []ItemOutcome `json:"items"`
	Warnings    []string      `json:"warnings"`
}

// MigrationResult summarizes a copy between two marketplace templates.
type MigrationResult struct {
	JobID         string            `json:"jobId"`
	Workbook      []byte            `json:"-"`
	ColumnsMapped map[string]string `json:"columnsMapped"`
	Unmapped      []string          `json:"unmapped"`
	CellsCopied   int               `json:"cellsCopied"`
	RowsCopied    int               `json:"rowsCopied"`
}
