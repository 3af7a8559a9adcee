package domain

import "fmt"

// GrowthRule selects how an amount changes over the projection window.
type GrowthRule string

const (
	GrowthNone           GrowthRule = "NONE"
	GrowthTrackInflation GrowthRule = "TRACK_INFLATION"
	GrowthCustomPercent  GrowthRule = "CUSTOM_PERCENT"
)

// Valid reports whether g is a known rule.
func (g GrowthRule) Valid() bool {
	switch g {
	case GrowthNone, GrowthTrackInflation, GrowthCustomPercent:
		return true
	}
	return false
}

// Frequency describes how often a nominal amount recurs.
type Frequency string

const (
	FrequencyMonthly  Frequency = "MONTHLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyAnnual   Frequency = "ANNUAL"
	FrequencyOneTime  Frequency = "ONE_TIME"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyBiweekly, FrequencyWeekly, FrequencyAnnual, FrequencyOneTime:
		return true
	}
	return false
}

// FilingStatus is the federal filing status of the household.
type FilingStatus string

const (
	FilingSingle FilingStatus = "SINGLE"
	FilingMFJ    FilingStatus = "MFJ"
	FilingHOH    FilingStatus = "HOH"
)

// Valid reports whether s is a supported filing status.
func (s FilingStatus) Valid() bool {
	switch s {
	case FilingSingle, FilingMFJ, FilingHOH:
		return true
	}
	return false
}

// TaxIndexing selects how future-month taxes follow inflation.
type TaxIndexing string

const (
	// TaxIndexingBrackets scales bracket thresholds, the standard deduction
	// and the Social Security wage base by the inflation factor of January
	// of each projection year.
	TaxIndexingBrackets TaxIndexing = "BRACKETS"
	// TaxIndexingLegacySqrt keeps brackets fixed and multiplies the computed
	// tax by 1/sqrt(inflation factor). Retained for compatibility with
	// results produced by earlier engine versions.
	TaxIndexingLegacySqrt TaxIndexing = "LEGACY_SQRT"
)

// Valid reports whether t is a known indexing mode.
func (t TaxIndexing) Valid() bool {
	return t == TaxIndexingBrackets || t == TaxIndexingLegacySqrt
}

// WarningCode identifies the kind of a projection warning.
type WarningCode string

const (
	WarningDeficitMonth    WarningCode = "DEFICIT_MONTH"
	WarningGoalShortfall   WarningCode = "GOAL_SHORTFALL"
	WarningHighTaxDrag     WarningCode = "HIGH_TAX_DRAG"
	WarningTaxRulesMissing WarningCode = "TAX_RULES_MISSING"
)

// Severity grades a warning.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ParseFrequency converts user input to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown frequency %q", s)
	}
	return f, nil
}
