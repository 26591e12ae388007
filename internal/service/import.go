package service

// ImportReport summarizes a batch import: rows that failed validation are
// skipped and reported, they never abort the rest of the batch.
type ImportReport struct {
	Imported int              `json:"imported"`
	Skipped  []ImportRowError `json:"skipped"`
}

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (r *ImportReport) skip(row int, reason string) {
	r.Skipped = append(r.Skipped, ImportRowError{Row: row, Reason: reason})
}
