package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateType(t *testing.T) {
	assert.Equal(t, "research article", TranslateType("research"))
	assert.Equal(t, "textbook", TranslateType("textbook"))
	assert.Equal(t, "creative work", TranslateType("creative"))
	assert.Equal(t, "social engagement", TranslateType("social"))
	assert.Equal(t, "social engagement", TranslateType("local"))
	assert.Equal(t, "industry", TranslateType("industry"))
	assert.Equal(t, "innovation", TranslateType("patent"))

	// Unknown tags pass through for the substring classifier.
	assert.Equal(t, "research article (legacy)", TranslateType("research article (legacy)"))
}

func TestTranslateLevelPriority(t *testing.T) {
	// database outranks publish_type outranks type.
	level := TranslateLevel(map[string]string{
		"database":     "scopus_q1_q2",
		"publish_type": "inter",
		"type":         "local",
	})
	assert.Equal(t, LevelQ1Q2, level)

	level = TranslateLevel(map[string]string{
		"publish_type": "inter",
		"type":         "local",
	})
	assert.Equal(t, LevelIntlPublisher, level)

	level = TranslateLevel(map[string]string{"type": "local"})
	assert.Equal(t, LevelLocalPress, level)
}

func TestTranslateLevelExact(t *testing.T) {
	assert.Equal(t, LevelQ1Q2, TranslateLevel(map[string]string{"database": "scopus_q1_q2"}))
	assert.Equal(t, LevelInternational, TranslateLevel(map[string]string{"database": "scopus_other"}))
	assert.Equal(t, LevelNational, TranslateLevel(map[string]string{"database": "national"}))
}

func TestTranslateLevelCompound(t *testing.T) {
	assert.Equal(t, LevelInternational, TranslateLevel(map[string]string{"type": "inter_exhibit"}))
	assert.Equal(t, LevelCooperation, TranslateLevel(map[string]string{"type": "coop_project"}))
	assert.Equal(t, LevelNational, TranslateLevel(map[string]string{"type": "national_stage"}))
}

func TestTranslateLevelPassthrough(t *testing.T) {
	assert.Equal(t, "A+", TranslateLevel(map[string]string{"database": "A+"}))
	assert.Equal(t, "", TranslateLevel(map[string]string{}))
	assert.Equal(t, "", TranslateLevel(nil))
}

func TestTranslateRole(t *testing.T) {
	assert.Equal(t, RoleFirst, TranslateRole(map[string]string{"contribution": "first"}))
	assert.Equal(t, RoleFirst, TranslateRole(map[string]string{"contribution": "corresponding"}))
	assert.Equal(t, RoleFirst, TranslateRole(map[string]string{"contribution": "main"}))
	assert.Equal(t, RoleCo, TranslateRole(map[string]string{"contribution": "co"}))
	assert.Equal(t, RoleCo, TranslateRole(map[string]string{"contribution": "something else"}))
	assert.Equal(t, RoleCo, TranslateRole(map[string]string{}))
	assert.Equal(t, RoleCo, TranslateRole(nil))
}
