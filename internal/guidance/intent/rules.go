package intent

import (
	"regexp"

	"github.com/gloryco/thewell/internal/domain/guidance"
)

var crisisPattern = regexp.MustCompile(`suicide|kill myself|self[-\s]?harm|harm myself|overdose|i want to die|abuse|in danger`)

func crisisRule() Rule {
	return Rule{Intent: guidance.IntentCrisis, Pattern: crisisPattern}
}

// StaticRules selects a hand-authored content block.
func StaticRules() []Rule {
	return []Rule{
		crisisRule(),
		{Intent: guidance.IntentAssurance, Pattern: regexp.MustCompile(`assurance|saved|salvation|forgiven|doubt my faith|lose my salvation`)},
		{Intent: guidance.IntentPrayer, Pattern: regexp.MustCompile(`pray`)},
		{Intent: guidance.IntentAnxiety, Pattern: regexp.MustCompile(`anxi|worry|worried|fear|afraid|panic|stress`)},
		{Intent: guidance.IntentPurity, Pattern: regexp.MustCompile(`lust|porn|purity|temptation|sexual`)},
		{Intent: guidance.IntentSuffering, Pattern: regexp.MustCompile(`suffer|grief|griev|loss|pain|hurting|cancer`)},
	}
}

// LightRules tag LLM-mode questions for the UI and analytics.
func LightRules() []Rule {
	return []Rule{
		crisisRule(),
		{Intent: guidance.IntentResurrection, Pattern: regexp.MustCompile(`did\s*jesus\s*rise|resurrection|minimal\s*facts|empty\s*tomb|habermas`)},
		{Intent: guidance.IntentExistence, Pattern: regexp.MustCompile(`why\s+believe\s+(in\s+)?god|does\s+god\s+exist|fine[-\s]?tuning|moral\s+law|first\s*cause|atheis|agnosti`)},
		{Intent: guidance.IntentEvil, Pattern: regexp.MustCompile(`problem\s+of\s+evil|suffering|why\s+bad\s+things`)},
		{Intent: guidance.IntentBibliology, Pattern: regexp.MustCompile(`(bible|scripture).*(reliable|canon|manuscript|inerrant|inspiration|contradiction)`)},
		{Intent: guidance.IntentTrinity, Pattern: regexp.MustCompile(`trinity|triune|three\s*in\s*one|godhead`)},
		{Intent: guidance.IntentChristology, Pattern: regexp.MustCompile(`who\s*is\s*jesus|is\s*jesus\s*god|incarnation|deity\s*of\s*christ`)},
		{Intent: guidance.IntentSoteriology, Pattern: regexp.MustCompile(`salvation|saved|assurance|born again|eternal life`)},
	}
}

func NewStatic() *Classifier { return mustNew(StaticRules()) }

func NewLight() *Classifier { return mustNew(LightRules()) }
