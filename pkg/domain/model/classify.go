package model

// ClassifiedReport is the authoritative split of contaminants into those
// exceeding their health guideline and everything else.
type ClassifiedReport struct {
	Exceeding []Contaminant
	Others    []Contaminant
}

// Total returns the number of contaminants across both lists
func (r ClassifiedReport) Total() int {
	return len(r.Exceeding) + len(r.Others)
}

// Exceeds reports whether a contaminant's system average is above a defined
// health guideline. A guideline that is missing, unparseable, zero or
// negative cannot be exceeded.
func Exceeds(c Contaminant) bool {
	average, ok := c.SystemAverage.Float()
	if !ok {
		return false
	}
	guideline, ok := c.HealthGuideline.Float()
	if !ok {
		return false
	}
	return guideline > 0 && average > guideline
}

// Classify recomputes the exceeds/others split from the numeric fields.
// Both inputs are concatenated (exceeds first) and stably partitioned, so
// the provider's own placement has no influence and nothing is dropped.
func Classify(rawExceeds, rawOthers []Contaminant) ClassifiedReport {
	report := ClassifiedReport{
		Exceeding: make([]Contaminant, 0, len(rawExceeds)),
		Others:    make([]Contaminant, 0, len(rawOthers)),
	}

	for _, list := range [][]Contaminant{rawExceeds, rawOthers} {
		for _, c := range list {
			if Exceeds(c) {
				report.Exceeding = append(report.Exceeding, c)
			} else {
				report.Others = append(report.Others, c)
			}
		}
	}

	return report
}
