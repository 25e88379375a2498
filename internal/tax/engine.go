package tax

import (
	"github.com/shopspring/decimal"

	"github.com/taxdoc-core/internal/form"
	"github.com/taxdoc-core/internal/money"
)

// incomeLines feed line9; the order matters only for readers
var incomeLines = []string{
	form.LineWages,
	form.LineTaxableInterest,
	form.LineOrdinaryDividends,
	form.LineIRADistributions,
	form.LinePensions,
	form.LineSocialSecurity,
	form.LineCapitalGain,
	form.LineOtherIncome,
}

var paymentLines = []string{
	form.LineWithholdingW2,
	form.LineWithholding1099,
	form.LineWithholdingOther,
	form.LineWithholdingTotal,
}

// Recompute derives every computed line from the non-derived lines present
// and returns a new line set; the input is not mutated. It is pure and
// idempotent, so it is safe to call after every fold. Knows nothing about
// documents: only the line set.
func Recompute(ls *form.LineSet) *form.LineSet {
	out := ls.Clone()
	status := ParseFilingStatus(out.FilingStatus)

	// line9: total income
	totalIncome := decimal.Zero
	for _, line := range incomeLines {
		totalIncome = totalIncome.Add(out.Get(line))
	}
	out.Set(form.LineTotalIncome, money.Round2(totalIncome))

	// line11: AGI = total income less adjustments
	agi := totalIncome.Sub(out.Get(form.LineAdjustments))
	out.Set(form.LineAGI, money.Round2(agi))

	// line12: standard deduction unless itemized deductions were set
	deduction := out.Get(form.LineDeduction)
	if !out.ItemizedDeductions {
		deduction = StandardDeduction(status)
		out.Set(form.LineDeduction, deduction)
	}

	// line15: taxable income, floored at zero
	taxable := agi.Sub(deduction).Sub(out.Get(form.LineQBIDeduction))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	out.Set(form.LineTaxableIncome, money.Round2(taxable))

	// line16: progressive bracket tax
	tax := bracketTax(taxable, status)
	out.Set(form.LineTax, money.Round2(tax))

	// line24: total tax
	totalTax := tax.Add(out.Get(form.LineAdditionalTax)).Add(out.Get(form.LineOtherTaxes))
	out.Set(form.LineTotalTax, money.Round2(totalTax))

	// line32: total payments from every withholding line
	payments := decimal.Zero
	for _, line := range paymentLines {
		payments = payments.Add(out.Get(line))
	}
	out.Set(form.LineTotalPayments, money.Round2(payments))

	// line33/line37: refund or amount owed, never both
	if payments.GreaterThan(totalTax) {
		out.Set(form.LineRefund, money.Round2(payments.Sub(totalTax)))
		out.Set(form.LineAmountOwed, decimal.Zero)
	} else {
		out.Set(form.LineRefund, decimal.Zero)
		out.Set(form.LineAmountOwed, money.Round2(totalTax.Sub(payments)))
	}

	return out
}

// bracketTax applies the cumulative marginal computation: each bracket in
// ascending order taxes min(remaining, width) at its rate.
func bracketTax(taxable decimal.Decimal, status FilingStatus) decimal.Decimal {
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	tax := decimal.Zero
	remaining := taxable
	floor := decimal.Zero

	for _, bracket := range Brackets(status) {
		var width decimal.Decimal
		if bracket.UpTo.IsZero() {
			width = remaining // top bracket is unbounded
		} else {
			width = bracket.UpTo.Sub(floor)
			floor = bracket.UpTo
		}

		slice := remaining
		if width.LessThan(slice) {
			slice = width
		}

		tax = tax.Add(slice.Mul(bracket.Rate))
		remaining = remaining.Sub(slice)
		if !remaining.IsPositive() {
			break
		}
	}

	return tax
}
