package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Q1 Q2", Normalize("  Q1. Q2.  "))
	assert.Equal(t, "research article", Normalize("research article"))
	assert.Equal(t, "", Normalize("   "))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		workType string
		want     Category
	}{
		{"research article", CategoryResearchArticle},
		{"Research Article (Scopus)", CategoryResearchArticle},
		{"textbook", CategoryBook},
		{"book chapter", CategoryBook},
		{"creative work", CategoryCreative},
		{"social engagement", CategoryGraded},
		{"industry", CategoryGraded},
		{"teaching", CategoryGraded},
		{"policy", CategoryGraded},
		{"innovation", CategoryGraded},
		{"poem", CategoryUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.workType), "type %q", tc.workType)
	}
}

func TestRoleWeight(t *testing.T) {
	assert.Equal(t, 1.0, RoleWeight("first"))
	assert.Equal(t, 1.0, RoleWeight("corresponding"))
	assert.Equal(t, 1.0, RoleWeight("main"))
	assert.Equal(t, 0.5, RoleWeight("co"))
	assert.Equal(t, 0.5, RoleWeight("essential"))
	assert.Equal(t, 0.0, RoleWeight("reviewer"))
	assert.Equal(t, 0.0, RoleWeight(""))
}

func TestTierScoreOrdering(t *testing.T) {
	// "international" must win over the "national" substring it contains.
	assert.Equal(t, 1.00, TierScore(CategoryResearchArticle, "international journal"))
	assert.Equal(t, 0.75, TierScore(CategoryResearchArticle, "national journal"))

	// "A+" must win over plain "A".
	assert.Equal(t, 1.25, TierScore(CategoryGraded, "A+"))
	assert.Equal(t, 1.00, TierScore(CategoryGraded, "A"))
	assert.Equal(t, 0.75, TierScore(CategoryGraded, "B"))
}

func TestTierScoreGradedCaseSensitive(t *testing.T) {
	// Short grade tokens must not match lowercase free text.
	assert.Equal(t, 0.0, TierScore(CategoryGraded, "a regional award"))
	assert.Equal(t, 1.00, TierScore(CategoryGraded, "grade A"))
}

func TestTierScoreUnknown(t *testing.T) {
	assert.Equal(t, 0.0, TierScore(CategoryResearchArticle, "blog post"))
	assert.Equal(t, 0.0, TierScore(CategoryUnknown, "Q1"))
}

func TestScoreWork(t *testing.T) {
	res := ScoreWork("research article", "Q1 Q2", "first")
	assert.False(t, res.Err)
	assert.Equal(t, 1.25, res.Score)
	assert.Equal(t, 1.0, res.Weight)
	assert.Equal(t, 1.25, res.FinalScore)

	res = ScoreWork("research article", "national journal", "co")
	assert.False(t, res.Err)
	assert.Equal(t, 0.75, res.Score)
	assert.Equal(t, 0.5, res.Weight)
	assert.InDelta(t, 0.375, res.FinalScore, 1e-9)
}

func TestScoreWorkIncomplete(t *testing.T) {
	res := ScoreWork("research article", "unknown level", "first")
	assert.True(t, res.Err)
	assert.Equal(t, 0.0, res.FinalScore)
	assert.NotEmpty(t, res.Message)

	res = ScoreWork("research article", "Q1", "unknown role")
	assert.True(t, res.Err)
	assert.Equal(t, 0.0, res.FinalScore)
}

func TestScoreWorkDeterministic(t *testing.T) {
	first := ScoreWork("creative work", "international exhibition", "main")
	second := ScoreWork("creative work", "international exhibition", "main")
	assert.Equal(t, first, second)
}
