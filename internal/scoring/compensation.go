package scoring

import (
	"math"
	"strings"

	"github.com/warit-s/acadpay-api/internal/models"
)

// positionTier identifies a compensation band group by academic rank.
type positionTier int

const (
	tierNone positionTier = iota
	tierAssistant
	tierAssociate
	tierProfessor
)

// Position strings carry honorific decorations, so ranks are matched by
// leading substring. Thai abbreviations are kept for interop with legacy
// user records.
var positionPrefixes = []struct {
	Prefix string
	Tier   positionTier
}{
	{"assistant", tierAssistant},
	{"asst", tierAssistant},
	{"ผศ", tierAssistant},
	{"associate", tierAssociate},
	{"assoc", tierAssociate},
	{"รศ", tierAssociate},
	{"professor", tierProfessor},
	{"prof", tierProfessor},
	{"ศ", tierProfessor},
}

// band is one closed score interval mapping to a fixed amount.
type band struct {
	Tier positionTier
	Low  float64
	High float64
	Pay  float64
}

var compensationBands = []band{
	{tierAssistant, 0.50, 0.74, 3000},
	{tierAssistant, 0.75, math.Inf(1), 5600},
	{tierAssociate, 0.75, 1.24, 6000},
	{tierAssociate, 1.25, math.Inf(1), 9900},
	{tierProfessor, 1.25, 1.49, 9000},
	{tierProfessor, 1.50, math.Inf(1), 13000},
}

func classifyPosition(position string) positionTier {
	position = strings.ToLower(Normalize(position))
	for _, p := range positionPrefixes {
		if strings.HasPrefix(position, p.Prefix) {
			return p.Tier
		}
	}
	return tierNone
}

// Compensation looks up the monetary award for a total score and academic
// position. Scores outside all defined bands yield zero.
func Compensation(totalScore float64, position string) float64 {
	tier := classifyPosition(position)
	if tier == tierNone {
		return 0
	}
	for _, b := range compensationBands {
		if b.Tier == tier && totalScore >= b.Low && totalScore <= b.High {
			return b.Pay
		}
	}
	return 0
}

// ScoreWorks translates and scores every work item, returning the scored
// copies and the total of all non-error final scores. Error items keep their
// error flag set for human review and contribute zero.
func ScoreWorks(works []models.WorkItem) ([]models.WorkItem, float64) {
	scored := make([]models.WorkItem, len(works))
	total := 0.0
	for i, work := range works {
		res := ScoreWork(
			TranslateType(work.Type),
			TranslateLevel(work.Details),
			TranslateRole(work.Details),
		)

		work.CalculatedScore = res.Score
		work.CalculatedWeight = res.Weight
		work.NetScore = res.FinalScore
		work.CalcError = res.Err
		work.CalcMessage = res.Message
		scored[i] = work

		if !res.Err {
			total += res.FinalScore
		}
	}
	return scored, total
}

// ComputeTotals scores a work list and resolves the compensation amount for
// the applicant's position in one step.
func ComputeTotals(works []models.WorkItem, position string) ([]models.WorkItem, float64, float64) {
	scored, total := ScoreWorks(works)
	return scored, total, Compensation(total, position)
}
