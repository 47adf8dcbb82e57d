package classify

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/rcliao/life-os/internal/model"
)

// Analysis is what the model returns for a storage submission.
type Analysis struct {
	Category   model.Category `json:"category" jsonschema:"enum=Thought,enum=Decision,enum=Idea,enum=Goal,enum=Learning,enum=Event,enum=Relationship,enum=Problem,enum=Experiment,enum=Identity"`
	Intent     string         `json:"intent" jsonschema_description:"What the user means to capture"`
	Facts      []string       `json:"facts,omitempty" jsonschema_description:"Concrete facts stated in the input"`
	Emotions   []string       `json:"emotions,omitempty"`
	Importance *float64       `json:"importance,omitempty" jsonschema_description:"Relative importance, higher is more important"`
	Tags       []string       `json:"tags,omitempty"`
	LifePhase  string         `json:"lifePhase,omitempty" jsonschema_description:"Inferred phase of life the input belongs to"`
}

// Outcome tags a decoded analysis.
type Outcome string

const (
	// Valid means the model output parsed and carried the required fields.
	Valid Outcome = "valid"
	// Fallback means the output was unusable and Fallback() was substituted.
	Fallback Outcome = "fallback"
)

// Decoded is the result of Decode.
type Decoded struct {
	Analysis Analysis
	Outcome  Outcome
}

// FallbackIntent is the intent given to a memory whose analysis could not be decoded.
const FallbackIntent = "General reflection"

// FallbackAnalysis is substituted when the model output cannot be used.
func FallbackAnalysis() Analysis {
	importance := 1.0
	return Analysis{
		Category:   model.CategoryThought,
		Intent:     FallbackIntent,
		Facts:      []string{},
		Emotions:   []string{},
		Importance: &importance,
		Tags:       []string{},
	}
}

// Decode parses raw model output. Anything that is not a JSON object with a
// category and an intent decodes to FallbackAnalysis. A category outside the
// enumeration is kept; rendering falls back to a default style for it.
func Decode(raw string) Decoded {
	var a Analysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &a); err != nil {
		return Decoded{Analysis: FallbackAnalysis(), Outcome: Fallback}
	}
	if strings.TrimSpace(string(a.Category)) == "" || strings.TrimSpace(a.Intent) == "" {
		return Decoded{Analysis: FallbackAnalysis(), Outcome: Fallback}
	}
	return Decoded{Analysis: a, Outcome: Valid}
}

// stripFences removes a surrounding ```json fence some models add despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// Schema returns the JSON schema of Analysis for constrained model output.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return r.Reflect(Analysis{})
}

// Memory builds the memory recorded for a storage submission.
func (a Analysis) Memory(id, content string, ts time.Time) model.Memory {
	return model.Memory{
		ID:        id,
		Timestamp: ts.UTC(),
		Content:   content,
		Category:  a.Category,
		Metadata: model.Metadata{
			Intent:     a.Intent,
			Facts:      a.Facts,
			Emotions:   a.Emotions,
			Importance: a.Importance,
			Tags:       a.Tags,
		},
		InferredLifePhase: a.LifePhase,
	}.Clone()
}
