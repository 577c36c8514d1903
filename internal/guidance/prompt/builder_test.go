package prompt

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDefaults(t *testing.T) {
	p := Build(Input{Query: "Is the Bible reliable?"})

	assert.Empty(t, p.System)
	assert.Empty(t, p.Developer)
	assert.True(t, strings.HasPrefix(p.User, "Question: Is the Bible reliable?\nMode: none\nDepth: deep\n"))
	assert.Contains(t, p.User, "Quote from ESV → CSB → NIV → NKJV. Keep direct quotes ≤ 120 words.")
	assert.Contains(t, p.User, "Use ≤ 5 cross-references unless the user requested /study.")
	assert.True(t, strings.HasSuffix(p.User, Schema))
}

func TestBuildEveryModeRulePresent(t *testing.T) {
	p := Build(Input{Query: "q"})
	assert.Len(t, ModeRules, 6)
	for _, r := range ModeRules {
		assert.Contains(t, p.User, "  "+r.Mode+" → "+r.Instruction+"\n")
	}
}

func TestBuildPassesThroughCallerValues(t *testing.T) {
	p := Build(Input{
		Query:     "pray for my exam",
		Mode:      "/pray",
		Depth:     "short",
		System:    "  you are a pastor  ",
		Developer: "be brief",
		Constraints: Constraints{
			TranslationOrder: []string{"NIV", "ESV"},
			XrefLimit:        2,
			MaxQuoteWords:    37.5,
		},
	})

	assert.Equal(t, "  you are a pastor  ", p.System)
	assert.Equal(t, "be brief", p.Developer)
	assert.Contains(t, p.User, "Mode: /pray\nDepth: short\n")
	assert.Contains(t, p.User, "Quote from NIV → ESV. Keep direct quotes ≤ 37.5 words.")
	assert.Contains(t, p.User, "Use ≤ 2 cross-references")
}

func TestBuildFallsBackOnUnusableNumbers(t *testing.T) {
	for _, v := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		p := Build(Input{Query: "q", Constraints: Constraints{XrefLimit: v, MaxQuoteWords: v}})
		assert.Contains(t, p.User, "Use ≤ 5 cross-references")
		assert.Contains(t, p.User, "≤ 120 words")
	}
}

func TestSchemaNamesPayloadFields(t *testing.T) {
	for _, field := range []string{"response", "explanation", "scripture_pathway", "next_steps", "reflection_prayer", "follow_up_question", "intent"} {
		assert.Contains(t, Schema, `"`+field+`"`)
	}
}
