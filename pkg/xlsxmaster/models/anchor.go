package models

// Anchor represents the zero-based cell box a drawing object is placed in.
type Anchor struct {
	// ColFrom is the start column (0-based).
	ColFrom int `json:"col_from"`
	// RowFrom is the start row (0-based).
	RowFrom int `json:"row_from"`
	// ColTo is the end column (0-based, inclusive).
	ColTo int `json:"col_to"`
	// RowTo is the end row (0-based, inclusive).
	RowTo int `json:"row_to"`
}
