package scoring

import "strings"

// Canonical vocabulary produced by the submission-form translation layer and
// consumed by ScoreWork.
const (
	LevelQ1Q2          = "Q1 Q2"
	LevelInternational = "international"
	LevelNational      = "national"
	LevelIntlPublisher = "international publisher"
	LevelLocalPress    = "local press"
	LevelCooperation   = "cooperation"

	RoleFirst = "first"
	RoleCo    = "co"
)

// TranslateType maps a raw frontend work-type tag onto the canonical rubric
// type. Unrecognised tags pass through unchanged so the substring classifier
// can still take a shot at them.
func TranslateType(raw string) string {
	switch raw {
	case "research":
		return "research article"
	case "textbook":
		return "textbook"
	case "creative":
		return "creative work"
	case "social", "local":
		return "social engagement"
	case "industry":
		return "industry"
	case "teaching":
		return "teaching"
	case "policy":
		return "policy"
	case "innovation", "patent":
		return "innovation"
	}
	return raw
}

// TranslateLevel picks the level token out of a work's details map and maps
// it onto the canonical vocabulary. The database key is prioritised because
// the graded categories carry their A+/A/B grade there.
func TranslateLevel(details map[string]string) string {
	raw := details["database"]
	if raw == "" {
		raw = details["publish_type"]
	}
	if raw == "" {
		raw = details["type"]
	}

	switch raw {
	case "scopus_q1_q2":
		return LevelQ1Q2
	case "scopus_other":
		return LevelInternational
	case "national":
		return LevelNational
	case "inter":
		return LevelIntlPublisher
	case "local":
		return LevelLocalPress
	}

	// Creative-work levels arrive as compound tokens (inter_exhibit,
	// coop_project, national_stage and the like).
	switch {
	case strings.Contains(raw, "inter"):
		return LevelInternational
	case strings.Contains(raw, "coop"):
		return LevelCooperation
	case strings.Contains(raw, "national"):
		return LevelNational
	}

	return raw
}

// TranslateRole collapses the frontend contribution token onto the two
// canonical roles. Anything outside the full-weight set defaults to
// co-author.
func TranslateRole(details map[string]string) string {
	switch details["contribution"] {
	case "first", "corresponding", "main":
		return RoleFirst
	}
	return RoleCo
}
