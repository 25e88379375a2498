package tax

import "github.com/shopspring/decimal"

// FilingStatus selects the deduction and bracket tables
type FilingStatus string

const (
	Single          FilingStatus = "single"
	MarriedJoint    FilingStatus = "married_joint"
	MarriedSeparate FilingStatus = "married_separate"
	HeadOfHousehold FilingStatus = "head_of_household"
)

// ParseFilingStatus maps loose caller input onto a known status, defaulting
// to single
func ParseFilingStatus(s string) FilingStatus {
	switch FilingStatus(s) {
	case MarriedJoint, MarriedSeparate, HeadOfHousehold:
		return FilingStatus(s)
	default:
		return Single
	}
}

// Bracket is one progressive tax bracket. A zero UpTo means no upper bound.
type Bracket struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

// 2023 tax year tables. A single demonstrative year is carried; the shapes
// are what downstream calculation needs, not a multi-year tax-code archive.
var standardDeductions = map[FilingStatus]decimal.Decimal{
	Single:          d("13850"),
	MarriedJoint:    d("27700"),
	MarriedSeparate: d("13850"),
	HeadOfHousehold: d("20800"),
}

var bracketTables = map[FilingStatus][]Bracket{
	Single: {
		{UpTo: d("11000"), Rate: d("0.10")},
		{UpTo: d("44725"), Rate: d("0.12")},
		{UpTo: d("95375"), Rate: d("0.22")},
		{UpTo: d("182100"), Rate: d("0.24")},
		{UpTo: d("231250"), Rate: d("0.32")},
		{UpTo: d("578125"), Rate: d("0.35")},
		{Rate: d("0.37")},
	},
	MarriedJoint: {
		{UpTo: d("22000"), Rate: d("0.10")},
		{UpTo: d("89450"), Rate: d("0.12")},
		{UpTo: d("190750"), Rate: d("0.22")},
		{UpTo: d("364200"), Rate: d("0.24")},
		{UpTo: d("462500"), Rate: d("0.32")},
		{UpTo: d("693750"), Rate: d("0.35")},
		{Rate: d("0.37")},
	},
	MarriedSeparate: {
		{UpTo: d("11000"), Rate: d("0.10")},
		{UpTo: d("44725"), Rate: d("0.12")},
		{UpTo: d("95375"), Rate: d("0.22")},
		{UpTo: d("182100"), Rate: d("0.24")},
		{UpTo: d("231250"), Rate: d("0.32")},
		{UpTo: d("346875"), Rate: d("0.35")},
		{Rate: d("0.37")},
	},
	HeadOfHousehold: {
		{UpTo: d("15700"), Rate: d("0.10")},
		{UpTo: d("59850"), Rate: d("0.12")},
		{UpTo: d("95350"), Rate: d("0.22")},
		{UpTo: d("182100"), Rate: d("0.24")},
		{UpTo: d("231250"), Rate: d("0.32")},
		{UpTo: d("578100"), Rate: d("0.35")},
		{Rate: d("0.37")},
	},
}

// StandardDeduction returns the fixed deduction for a filing status
func StandardDeduction(status FilingStatus) decimal.Decimal {
	if v, ok := standardDeductions[status]; ok {
		return v
	}
	return standardDeductions[Single]
}

// Brackets returns the progressive bracket table for a filing status
func Brackets(status FilingStatus) []Bracket {
	if table, ok := bracketTables[status]; ok {
		return table
	}
	return bracketTables[Single]
}
