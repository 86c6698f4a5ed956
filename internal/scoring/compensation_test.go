package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warit-s/acadpay-api/internal/models"
)

func TestCompensationBands(t *testing.T) {
	cases := []struct {
		score    float64
		position string
		want     float64
	}{
		{0.60, "Assistant Professor", 3000},
		{0.74, "Assistant Professor", 3000},
		{0.75, "Assistant Professor", 5600},
		{2.00, "Assistant Professor", 5600},
		{0.40, "Assistant Professor", 0},

		{0.75, "Associate Professor", 6000},
		{1.24, "Associate Professor", 6000},
		{1.25, "Associate Professor", 9900},
		{0.60, "Associate Professor", 0},

		{1.25, "Professor", 9000},
		{1.49, "Professor", 9000},
		{1.50, "Professor", 13000},
		{1.00, "Professor", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Compensation(tc.score, tc.position),
			"score %.2f position %q", tc.score, tc.position)
	}
}

func TestCompensationPositionMatching(t *testing.T) {
	// Prefix match, case insensitive, Thai abbreviations included.
	assert.Equal(t, 3000.0, Compensation(0.60, "asst. prof. dr."))
	assert.Equal(t, 3000.0, Compensation(0.60, "ผศ.ดร."))
	assert.Equal(t, 6000.0, Compensation(0.80, "รศ."))
	assert.Equal(t, 9000.0, Compensation(1.30, "ศ.ดร."))
	assert.Equal(t, 0.0, Compensation(1.00, "lecturer"))
	assert.Equal(t, 0.0, Compensation(1.00, ""))
}

func TestScoreWorks(t *testing.T) {
	works := []models.WorkItem{
		{
			Type:    "research",
			Details: map[string]string{"database": "scopus_q1_q2", "contribution": "first"},
		},
		{
			Type:    "research",
			Details: map[string]string{"database": "national", "contribution": "co"},
		},
		{
			Type:    "research",
			Details: map[string]string{"database": "unknown", "contribution": "first"},
		},
	}

	scored, total := ScoreWorks(works)
	assert.Len(t, scored, 3)

	assert.False(t, scored[0].CalcError)
	assert.Equal(t, 1.25, scored[0].NetScore)

	assert.False(t, scored[1].CalcError)
	assert.InDelta(t, 0.375, scored[1].NetScore, 1e-9)

	assert.True(t, scored[2].CalcError)
	assert.Equal(t, 0.0, scored[2].NetScore)
	assert.NotEmpty(t, scored[2].CalcMessage)

	assert.InDelta(t, 1.625, total, 1e-9)

	// Inputs are not mutated.
	assert.Equal(t, 0.0, works[0].NetScore)
}

func TestComputeTotals(t *testing.T) {
	works := []models.WorkItem{
		{
			Type:    "research",
			Details: map[string]string{"database": "scopus_q1_q2", "contribution": "first"},
		},
	}

	scored, total, pay := ComputeTotals(works, "Associate Professor")
	assert.Len(t, scored, 1)
	assert.Equal(t, 1.25, total)
	assert.Equal(t, 9900.0, pay)
}

func TestComputeTotalsEmpty(t *testing.T) {
	scored, total, pay := ComputeTotals(nil, "Professor")
	assert.Empty(t, scored)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 0.0, pay)
}
