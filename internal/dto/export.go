package dto

// ExportData is the tabular representation returned by GET /export.
type ExportData struct {
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
	Total    int        `json:"total"`
	Filename string     `json:"filename"`
}

// Category pairs a searchable keyword with its display label.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
