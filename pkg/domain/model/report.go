package model

import (
	"fmt"
	"math"
)

// ContaminantRow is one contaminant as displayed in a report
type ContaminantRow struct {
	Contaminant `yaml:",inline"`

	// Multiplier is how many times the system average exceeds the health
	// guideline, rounded to two decimals. Nil when not exceeding or when no
	// usable guideline exists.
	Multiplier *float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
}

// MultiplierLabel returns the multiplier as shown on a badge, e.g. "3000.00X"
func (r ContaminantRow) MultiplierLabel() string {
	if r.Multiplier == nil {
		return ""
	}
	return fmt.Sprintf("%.2fX", *r.Multiplier)
}

// Report is the assembled summary for one water system
type Report struct {
	System         WaterSystem      `json:"system" yaml:"system"`
	ExceedingCount int              `json:"exceedingCount" yaml:"exceedingCount"`
	TotalCount     int              `json:"totalCount" yaml:"totalCount"`
	Exceeding      []ContaminantRow `json:"exceeding" yaml:"exceeding"`
	Others         []ContaminantRow `json:"others" yaml:"others"`
}

// NoData reports whether the provider returned no contaminants at all
func (r *Report) NoData() bool {
	return r.TotalCount == 0
}

// NoDataMessage returns the notice shown instead of contaminant cards
func (r *Report) NoDataMessage() string {
	return fmt.Sprintf(MessageNoContaminants, r.System.Name)
}

// Multiplier computes round(average / guideline, 2). It is undefined when
// either value does not parse, the guideline is not positive or the ratio
// is not finite.
func Multiplier(c Contaminant) (float64, bool) {
	average, ok := c.SystemAverage.Float()
	if !ok {
		return 0, false
	}
	guideline, ok := c.HealthGuideline.Float()
	if !ok || guideline <= 0 {
		return 0, false
	}
	ratio := math.Round(average/guideline*100) / 100
	if !isFinite(ratio) {
		return 0, false
	}
	return ratio, true
}

// NewReport assembles a report from an enriched system and a classification
func NewReport(system WaterSystem, classified ClassifiedReport) *Report {
	report := &Report{
		System:         system,
		ExceedingCount: len(classified.Exceeding),
		TotalCount:     classified.Total(),
		Exceeding:      make([]ContaminantRow, 0, len(classified.Exceeding)),
		Others:         make([]ContaminantRow, 0, len(classified.Others)),
	}

	for _, c := range classified.Exceeding {
		row := ContaminantRow{Contaminant: c}
		if m, ok := Multiplier(c); ok {
			row.Multiplier = &m
		}
		report.Exceeding = append(report.Exceeding, row)
	}
	for _, c := range classified.Others {
		report.Others = append(report.Others, ContaminantRow{Contaminant: c})
	}

	return report
}

// ZipReport is a report together with the systems serving the searched zip code
type ZipReport struct {
	Systems *Systems `json:"systems" yaml:"systems"`
	Report  *Report  `json:"report" yaml:"report"`
}

// IsSelected reports whether the given system is the one being reported on
func (z *ZipReport) IsSelected(id string) bool {
	return z.Report != nil && z.Report.System.ID.String() == id
}
