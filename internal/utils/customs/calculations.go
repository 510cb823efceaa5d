package customs

import (
	"fmt"

	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Conversion rates to GNF. The table is deliberately static: clearance files
// are settled at the posted customs rate, not a live market rate.
var conversionRates = map[domain.Currency]decimal.Decimal{
	domain.CurrencyGNF: decimal.NewFromInt(1),
	domain.CurrencyUSD: decimal.NewFromInt(8646),
	domain.CurrencyEUR: decimal.NewFromInt(9340),
}

// Duty rates applied to the converted CIF value. TVA applies to value plus DD,
// so its base is computed separately in Compute.
var (
	rateDD  = decimal.NewFromFloat(0.35)
	rateRTL = decimal.NewFromFloat(0.02)
	ratePC  = decimal.NewFromFloat(0.005)
	rateCA  = decimal.NewFromFloat(0.0025)
	rateTVA = decimal.NewFromFloat(0.18)
)

// BFU is a step function of the converted value: three fixed tiers.
var (
	bfuTier1Ceiling = decimal.NewFromInt(50_000_000)
	bfuTier2Ceiling = decimal.NewFromInt(250_000_000)

	bfuTier1 = int64(75_000)
	bfuTier2 = int64(150_000)
	bfuTier3 = int64(300_000)
)

// Line is a single item of the duty breakdown.
type Line struct {
	Category domain.ExpenseCategory `json:"category"`
	Label    string                 `json:"label"`
	Amount   int64                  `json:"amount"` // Whole GNF, rounded half-up
}

// Breakdown is the full result of a duty computation.
type Breakdown struct {
	DeclaredValue    decimal.Decimal `json:"declaredValue"`
	DeclaredCurrency domain.Currency `json:"declaredCurrency"`
	RateApplied      decimal.Decimal `json:"rateApplied"`
	ValueGNF         int64           `json:"valueGNF"` // Converted CIF value, whole GNF
	Lines            []Line          `json:"lines"`
	TotalDuties      int64           `json:"totalDuties"`
}

// Rate returns the static GNF conversion rate for the given currency.
func Rate(currency domain.Currency) (decimal.Decimal, error) {
	rate, ok := conversionRates[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, currency)
	}
	return rate, nil
}

// ConvertToGNF converts an amount in the given currency to whole GNF,
// rounding half-up.
func ConvertToGNF(amount decimal.Decimal, currency domain.Currency) (int64, error) {
	rate, err := Rate(currency)
	if err != nil {
		return 0, err
	}
	return roundGNF(amount.Mul(rate)), nil
}

// Compute produces the itemized duty breakdown for a CIF value. It is pure:
// same inputs, same output, nothing persisted. Lines are ordered DD, RTL, PC,
// CA, TVA, BFU; TVA is charged on converted value plus DD, so it must be
// computed after DD. Every line is rounded half-up to whole GNF.
func Compute(cifValue decimal.Decimal, currency domain.Currency) (Breakdown, error) {
	if cifValue.IsNegative() {
		return Breakdown{}, fmt.Errorf("%w: CIF value must not be negative", apperrors.ErrValidation)
	}

	rate, err := Rate(currency)
	if err != nil {
		return Breakdown{}, err
	}

	converted := cifValue.Mul(rate)

	dd := roundGNF(converted.Mul(rateDD))
	rtl := roundGNF(converted.Mul(rateRTL))
	pc := roundGNF(converted.Mul(ratePC))
	ca := roundGNF(converted.Mul(rateCA))

	tvaBase := converted.Add(decimal.NewFromInt(dd))
	tva := roundGNF(tvaBase.Mul(rateTVA))

	bfu := bfuFor(converted)

	lines := []Line{
		{Category: domain.CategoryDD, Label: "Droit de douane (35%)", Amount: dd},
		{Category: domain.CategoryRTL, Label: "RTL (2%)", Amount: rtl},
		{Category: domain.CategoryPC, Label: "Prélèvement communautaire (0.5%)", Amount: pc},
		{Category: domain.CategoryCA, Label: "Centime additionnel (0.25%)", Amount: ca},
		{Category: domain.CategoryTVA, Label: "TVA (18% de la valeur + DD)", Amount: tva},
		{Category: domain.CategoryBFU, Label: "BFU", Amount: bfu},
	}

	var total int64
	for _, line := range lines {
		total += line.Amount
	}

	return Breakdown{
		DeclaredValue:    cifValue,
		DeclaredCurrency: currency,
		RateApplied:      rate,
		ValueGNF:         roundGNF(converted),
		Lines:            lines,
		TotalDuties:      total,
	}, nil
}

// bfuFor selects the BFU tier for a converted value.
func bfuFor(converted decimal.Decimal) int64 {
	switch {
	case converted.LessThanOrEqual(bfuTier1Ceiling):
		return bfuTier1
	case converted.LessThanOrEqual(bfuTier2Ceiling):
		return bfuTier2
	default:
		return bfuTier3
	}
}

// roundGNF rounds to the nearest whole GNF, half away from zero, which for the
// non-negative amounts handled here is round-half-up.
func roundGNF(v decimal.Decimal) int64 {
	return v.Round(0).IntPart()
}
