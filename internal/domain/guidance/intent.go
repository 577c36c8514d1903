package guidance

type Intent string

// Shared by both rule sets.
const (
	IntentCrisis  Intent = "crisis"
	IntentGeneral Intent = "general"
)

// Static-mode intents; each one selects a hand-authored content block.
const (
	IntentAssurance Intent = "assurance"
	IntentPrayer    Intent = "prayer"
	IntentAnxiety   Intent = "anxiety"
	IntentPurity    Intent = "purity"
	IntentSuffering Intent = "suffering"
)

// LLM-mode intents. These are tags for the UI and analytics only; the model
// shapes content from prompt instructions, not from these values.
const (
	IntentResurrection Intent = "resurrection"
	IntentExistence    Intent = "existence"
	IntentEvil         Intent = "evil"
	IntentBibliology   Intent = "bibliology"
	IntentTrinity      Intent = "trinity"
	IntentChristology  Intent = "christology"
	IntentSoteriology  Intent = "soteriology"
)

// StaticIntents lists every intent the static content table must cover.
var StaticIntents = []Intent{
	IntentCrisis,
	IntentAssurance,
	IntentPrayer,
	IntentAnxiety,
	IntentPurity,
	IntentSuffering,
	IntentGeneral,
}

var LightIntents = []Intent{
	IntentCrisis,
	IntentResurrection,
	IntentExistence,
	IntentEvil,
	IntentBibliology,
	IntentTrinity,
	IntentChristology,
	IntentSoteriology,
	IntentGeneral,
}

func (i Intent) String() string { return string(i) }
