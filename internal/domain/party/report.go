package party

import (
	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalRows   int    `json:"totalRows"`
	Successful  int    `json:"successful"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"successRate"`
}

type UploadReport struct {
	PartyType  Type
	Summary    Summary
	Inserted   []InsertedParty
	FailedRows []FailedRow
}

type Outcome string

const (
	OutcomeAllInserted  Outcome = "succeeded"
	OutcomePartial      Outcome = "partial"
	OutcomeNoneInserted Outcome = "failed"
)

func BuildReport(t Type, totalRows int, inserted []InsertedParty, failed []FailedRow) UploadReport {
	if inserted == nil {
		inserted = []InsertedParty{}
	}
	if failed == nil {
		failed = []FailedRow{}
	}

	return UploadReport{
		PartyType: t,
		Summary: Summary{
			TotalRows:   totalRows,
			Successful:  len(inserted),
			Failed:      len(failed),
			SuccessRate: SuccessRate(len(inserted), totalRows),
		},
		Inserted:   inserted,
		FailedRows: failed,
	}
}

// SuccessRate renders successful/total as a percentage with two decimals.
// An empty upload reports "0%".
func SuccessRate(successful, total int) string {
	if total <= 0 {
		return "0%"
	}
	rate := decimal.NewFromInt(int64(successful)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2)
	return rate.StringFixed(2) + "%"
}

// Outcome classifies the report. Nothing inserted wins over everything else, so an
// empty upload is a rejection too.
func (r UploadReport) Outcome() Outcome {
	switch {
	case r.Summary.Successful == 0:
		return OutcomeNoneInserted
	case r.Summary.Failed == 0:
		return OutcomeAllInserted
	default:
		return OutcomePartial
	}
}
