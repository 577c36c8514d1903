package content

import (
	"github.com/gloryco/thewell/internal/domain/guidance"
	"github.com/gloryco/thewell/internal/pkg/pointers"
)

// crisisBlock is kept out of the editable asset so a content change can never
// weaken the safety response.
var crisisBlock = Block{
	Response: "You matter, and you do not have to carry this alone. If you are thinking about " +
		"ending your life or you are not safe, please reach out for help right now: call or text " +
		"988 in the U.S., or contact local emergency services.",
	ScripturePathway: []guidance.ScriptureEntry{
		{
			Ref:         "Psalm 34:18",
			Quote:       pointers.String("The LORD is near to the brokenhearted and saves the crushed in spirit."),
			Why:         pointers.String("God is close to you in this moment"),
			Translation: guidance.TranslationESV,
		},
		{
			Ref:         "Matthew 11:28-30",
			Why:         pointers.String("Jesus invites the weary to come to him for rest"),
			Translation: guidance.TranslationESV,
		},
	},
	NextSteps: []string{
		"Call or text 988 (Suicide & Crisis Lifeline) or your local emergency number now.",
		"Tell a trusted person, pastor, or counselor what you are going through today.",
	},
}
