package intent

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloryco/thewell/internal/domain/guidance"
)

func TestStaticClassify(t *testing.T) {
	c := NewStatic()

	cases := []struct {
		query string
		want  guidance.Intent
	}{
		{"I want to die", guidance.IntentCrisis},
		{"I want to die and I have anxiety", guidance.IntentCrisis},
		{"thinking about SELF-HARM again", guidance.IntentCrisis},
		{"How do I know I'm saved?", guidance.IntentAssurance},
		{"teach me to pray", guidance.IntentPrayer},
		{"I'm so worried about tomorrow", guidance.IntentAnxiety},
		{"struggling with lust", guidance.IntentPurity},
		{"my mom has cancer", guidance.IntentSuffering},
		{"what is the sermon on the mount about", guidance.IntentGeneral},
		{"", guidance.IntentGeneral},
		{"   ", guidance.IntentGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.query))
		})
	}
}

func TestLightClassify(t *testing.T) {
	c := NewLight()

	cases := []struct {
		query string
		want  guidance.Intent
	}{
		{"I want to die and I have anxiety", guidance.IntentCrisis},
		{"I am in danger, is the resurrection real", guidance.IntentCrisis},
		{"Did Jesus rise from the dead?", guidance.IntentResurrection},
		{"does god exist", guidance.IntentExistence},
		{"Fine-tuning argument", guidance.IntentExistence},
		{"why is there so much suffering", guidance.IntentEvil},
		{"Is the Bible reliable?", guidance.IntentBibliology},
		{"explain the trinity", guidance.IntentTrinity},
		{"is jesus god", guidance.IntentChristology},
		{"what does born again mean", guidance.IntentSoteriology},
		{"what should I read this week", guidance.IntentGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.query))
		})
	}
}

func TestCrisisRuleIsFirst(t *testing.T) {
	for name, rules := range map[string][]Rule{"static": StaticRules(), "light": LightRules()} {
		require.NotEmpty(t, rules, name)
		assert.Equal(t, guidance.IntentCrisis, rules[0].Intent, name)
	}
}

func TestNewRejectsNonCrisisHead(t *testing.T) {
	_, err := New([]Rule{
		{Intent: guidance.IntentAnxiety, Pattern: regexp.MustCompile(`anxi`)},
		crisisRule(),
	})
	require.Error(t, err)

	_, err = New(nil)
	require.Error(t, err)

	_, err = New([]Rule{{Intent: guidance.IntentCrisis}})
	require.Error(t, err)
}

func TestCrisisPrecedesEveryTopic(t *testing.T) {
	topics := []string{"anxiety", "prayer", "salvation", "lust", "grief", "resurrection", "trinity", "is jesus god"}
	for _, c := range []*Classifier{NewStatic(), NewLight()} {
		for _, topic := range topics {
			q := topic + " and I want to die"
			assert.Equal(t, guidance.IntentCrisis, c.Classify(q), q)
			assert.True(t, c.IsCrisis(q), q)
		}
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	c := NewStatic()
	rules := c.Rules()
	rules[0] = Rule{Intent: guidance.IntentGeneral, Pattern: regexp.MustCompile(`.*`)}
	assert.Equal(t, guidance.IntentCrisis, c.Rules()[0].Intent)
}
