package classify

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/life-os/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"what did i say about running?", Retrieval},
		{"What Did I Say about running?", Retrieval},
		{"WHAT DID I SAY", Retrieval},
		{"Remember when we went hiking", Retrieval},
		{"please search for ideas about the garden", Retrieval},
		{"Summarize my life this month", Retrieval},
		{"I decided to learn the cello", Storage},
		{"what a day", Storage},
		{"", Storage},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestInputModeHint(t *testing.T) {
	assert.Equal(t, "RETRIEVAL", InputModeHint("what a day"))
	assert.Equal(t, "RETRIEVAL", InputModeHint("I remember the lake"))
	assert.Equal(t, "PASSIVE CAPTURE", InputModeHint("bought a bike"))
}

func TestContextWindow(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	var newestFirst []model.Memory
	for i := 59; i >= 0; i-- {
		newestFirst = append(newestFirst, model.Memory{
			ID:        fmt.Sprint(i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Category:  model.CategoryThought,
			Content:   fmt.Sprint("note ", i),
		})
	}

	w := ContextWindow(newestFirst, DefaultContextSize)
	lines := strings.Split(w, "\n")
	require.Len(t, lines, 50)
	// the 50 most recent are notes 10..59, oldest first
	assert.Equal(t, "[2026-05-01T12:10:00Z] (Thought): note 10", lines[0])
	assert.Equal(t, "[2026-05-01T12:59:00Z] (Thought): note 59", lines[49])

	assert.Equal(t, "", ContextWindow(nil, 0))
}

func TestDecodeValid(t *testing.T) {
	raw := `{"category":"Goal","intent":"fitness","facts":["run 5k"],"emotions":["hopeful"],"importance":7,"tags":["health"],"lifePhase":"rebuilding"}`
	d := Decode(raw)
	require.Equal(t, Valid, d.Outcome)
	assert.Equal(t, model.CategoryGoal, d.Analysis.Category)
	assert.Equal(t, "fitness", d.Analysis.Intent)
	assert.Equal(t, []string{"run 5k"}, d.Analysis.Facts)
	require.NotNil(t, d.Analysis.Importance)
	assert.Equal(t, 7.0, *d.Analysis.Importance)
	assert.Equal(t, "rebuilding", d.Analysis.LifePhase)
}

func TestDecodeFenced(t *testing.T) {
	d := Decode("```json\n{\"category\":\"Idea\",\"intent\":\"app\"}\n```")
	require.Equal(t, Valid, d.Outcome)
	assert.Equal(t, model.CategoryIdea, d.Analysis.Category)
	assert.Nil(t, d.Analysis.Importance)
}

func TestDecodeKeepsUnknownCategory(t *testing.T) {
	d := Decode(`{"category":"Dream","intent":"flying"}`)
	require.Equal(t, Valid, d.Outcome)
	assert.Equal(t, model.Category("Dream"), d.Analysis.Category)
}

func TestDecodeMalformedFallsBack(t *testing.T) {
	for _, raw := range []string{
		"",
		"not json at all",
		"{oops",
		`["an","array"]`,
		`{"category":"Goal"}`,
		`{"intent":"no category"}`,
		`{"category":"Goal","intent":"x","facts":"not a list"}`,
	} {
		t.Run(raw, func(t *testing.T) {
			d := Decode(raw)
			assert.Equal(t, Fallback, d.Outcome)
			assert.Equal(t, model.CategoryThought, d.Analysis.Category)
			assert.Equal(t, FallbackIntent, d.Analysis.Intent)
			assert.Empty(t, d.Analysis.Facts)
			assert.Empty(t, d.Analysis.Emotions)
			assert.Empty(t, d.Analysis.Tags)
			require.NotNil(t, d.Analysis.Importance)
			assert.Equal(t, 1.0, *d.Analysis.Importance)
		})
	}
}

func TestSchema(t *testing.T) {
	b, err := json.Marshal(Schema())
	require.NoError(t, err)

	var doc struct {
		Type       string                     `json:"type"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "object", doc.Type)
	assert.ElementsMatch(t, []string{"category", "intent"}, doc.Required)
	for _, p := range []string{"category", "intent", "facts", "emotions", "importance", "tags", "lifePhase"} {
		assert.Contains(t, doc.Properties, p)
	}
	for _, c := range model.Categories {
		assert.Contains(t, string(doc.Properties["category"]), string(c))
	}
}

func TestAnalysisMemory(t *testing.T) {
	a := FallbackAnalysis()
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 3600))
	m := a.Memory("id-1", "just a thought", ts)
	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, time.UTC, m.Timestamp.Location())
	assert.Equal(t, model.CategoryThought, m.Category)
	assert.Equal(t, FallbackIntent, m.Metadata.Intent)

	// the memory does not share slices with the analysis
	a.Tags = append(a.Tags, "late")
	assert.Empty(t, m.Metadata.Tags)
}

func TestPrompts(t *testing.T) {
	p := RetrievalPrompt("[t] (Idea): x", "what did i say")
	assert.Equal(t, "Context: \n[t] (Idea): x\n\nUser Request: what did i say", p)
	assert.True(t, strings.HasPrefix(RetrievalSystem(), SystemInstruction))
	assert.True(t, strings.HasSuffix(StorageSystem(), "Categorize the input."))
}
