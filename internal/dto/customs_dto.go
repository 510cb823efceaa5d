package dto

import (
	"github.com/kushtati/TRANSG/internal/utils"
	"github.com/kushtati/TRANSG/internal/utils/customs"
	"github.com/shopspring/decimal"
)

// EstimateDutiesRequest defines the payload for a duty estimation. HSCode is
// informational; the tariff lines are fixed percentages of the CIF value.
type EstimateDutiesRequest struct {
	CIFValue decimal.Decimal `json:"cifValue" binding:"required"`
	Currency string          `json:"currency" binding:"required,oneof=USD EUR GNF"`
	HSCode   string          `json:"hsCode" binding:"omitempty,max=12"`
}

// DutyLineResponse is one line of a duty breakdown.
type DutyLineResponse struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Amount   int64  `json:"amount"`
}

// BreakdownResponse is the itemized result of a duty computation.
// TotalFormatted carries the display form ("53 798 430 GNF") so quote
// surfaces do not re-implement French digit grouping.
type BreakdownResponse struct {
	DeclaredValue    decimal.Decimal    `json:"declaredValue"`
	DeclaredCurrency string             `json:"declaredCurrency"`
	RateApplied      decimal.Decimal    `json:"rateApplied"`
	ValueGNF         int64              `json:"valueGNF"`
	Lines            []DutyLineResponse `json:"lines"`
	TotalDuties      int64              `json:"totalDuties"`
	TotalFormatted   string             `json:"totalFormatted"`
}

// ToBreakdownResponse converts a customs.Breakdown to the DTO
func ToBreakdownResponse(b customs.Breakdown) BreakdownResponse {
	lines := make([]DutyLineResponse, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = DutyLineResponse{
			Category: string(l.Category),
			Label:    l.Label,
			Amount:   l.Amount,
		}
	}
	return BreakdownResponse{
		DeclaredValue:    b.DeclaredValue,
		DeclaredCurrency: string(b.DeclaredCurrency),
		RateApplied:      b.RateApplied,
		ValueGNF:         b.ValueGNF,
		Lines:            lines,
		TotalDuties:      b.TotalDuties,
		TotalFormatted:   utils.FormatGNF(b.TotalDuties),
	}
}
