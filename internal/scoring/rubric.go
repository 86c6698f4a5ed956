// Package scoring implements the compensation rubric: per-work classification
// into category and tier, contribution weighting, and the position/score
// compensation bands. Everything here is pure; identical inputs always give
// identical outputs, which the committee relies on for audit reproducibility.
package scoring

import "strings"

// Category is a rubric work category.
type Category string

const (
	CategoryResearchArticle Category = "research article"
	CategoryBook            Category = "textbook"
	CategoryCreative        Category = "creative work"
	// CategoryGraded covers the A+/A/B graded bucket: social or local
	// impact, industry, teaching, policy and innovation works.
	CategoryGraded  Category = "graded"
	CategoryUnknown Category = ""
)

// tier maps a level token to its base score. Tables are ordered most
// specific first; a token that is a substring of a more specific one must
// come after it ("A+" before "A", "international" before "national").
type tier struct {
	Token string
	Score float64
}

var categoryMatchers = []struct {
	Token    string
	Category Category
}{
	{"research", CategoryResearchArticle},
	{"textbook", CategoryBook},
	{"book", CategoryBook},
	{"creative", CategoryCreative},
	{"social", CategoryGraded},
	{"local", CategoryGraded},
	{"industry", CategoryGraded},
	{"teaching", CategoryGraded},
	{"policy", CategoryGraded},
	{"innovation", CategoryGraded},
}

var tierTables = map[Category][]tier{
	CategoryResearchArticle: {
		{"Q1", 1.25},
		{"Q2", 1.25},
		{"international", 1.00},
		{"national", 0.75},
	},
	CategoryBook: {
		{"international", 1.25},
		{"publisher", 1.25},
		{"press", 1.00},
		{"local", 1.00},
	},
	CategoryCreative: {
		{"international", 1.25},
		{"cooperation", 1.00},
		{"national", 0.75},
	},
	CategoryGraded: {
		{"A+", 1.25},
		{"A", 1.00},
		{"B", 0.75},
	},
}

// Contribution roles carrying full weight (first / corresponding / main
// author) versus half weight (co-author, essential intellectual
// contribution).
var (
	fullWeightRoles = map[string]struct{}{
		"first":         {},
		"corresponding": {},
		"main":          {},
	}
	halfWeightRoles = map[string]struct{}{
		"co":           {},
		"essential":    {},
		"intellectual": {},
	}
)

// WorkResult is the outcome of scoring a single work item. An Err result
// means the item does not count toward the total; it is not a hard failure.
type WorkResult struct {
	Score      float64
	Weight     float64
	FinalScore float64
	Err        bool
	Message    string
}

// Normalize trims surrounding whitespace and strips period characters from
// free-text rubric tokens.
func Normalize(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ".", "")
}

// Classify maps a free-text work type onto a rubric category. Matching is
// ordered substring based, case insensitive.
func Classify(workType string) Category {
	workType = strings.ToLower(Normalize(workType))
	for _, m := range categoryMatchers {
		if strings.Contains(workType, m.Token) {
			return m.Category
		}
	}
	return CategoryUnknown
}

// RoleWeight returns the contribution multiplier for a role token, or 0.0
// when the role is unrecognised.
func RoleWeight(role string) float64 {
	role = strings.ToLower(Normalize(role))
	if _, ok := fullWeightRoles[role]; ok {
		return 1.0
	}
	if _, ok := halfWeightRoles[role]; ok {
		return 0.5
	}
	return 0.0
}

// TierScore resolves a level token against the category's ordered tier
// table. Unknown tokens and unknown categories score 0.
func TierScore(cat Category, level string) float64 {
	level = Normalize(level)
	for _, t := range tierTables[cat] {
		if containsToken(level, t.Token) {
			return t.Score
		}
	}
	return 0.0
}

// ScoreWork scores one work item from its canonical type, level and role
// tokens. A zero weight or zero score yields an error result with the final
// score forced to 0.
func ScoreWork(workType, workLevel, role string) WorkResult {
	weight := RoleWeight(role)
	score := TierScore(Classify(workType), workLevel)

	if weight == 0.0 || score == 0.0 {
		return WorkResult{
			Score:   score,
			Weight:  weight,
			Err:     true,
			Message: "incomplete work data (weight or score is 0)",
		}
	}

	return WorkResult{
		Score:      score,
		Weight:     weight,
		FinalScore: score * weight,
	}
}

// containsToken matches case-insensitively except for the graded A+/A/B
// tokens, which stay case-sensitive so a lowercase free-text level cannot
// collide with a grade letter.
func containsToken(level, token string) bool {
	if len(token) <= 2 {
		return strings.Contains(level, token)
	}
	return strings.Contains(strings.ToLower(level), strings.ToLower(token))
}
