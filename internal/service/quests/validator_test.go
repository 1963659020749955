package quests

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascendapp/ascend-api/internal/domain"
)

func quizCheck() *domain.KnowledgeCheck {
	return &domain.KnowledgeCheck{
		Question:     "What does SM-2 adjust after a correct answer?",
		Options:      []string{"The ease factor", "The user ID", "The timezone"},
		CorrectIndex: 0,
		Explanation:  "The ease factor drives the interval growth.",
	}
}

func TestQuizAnswerScore(t *testing.T) {
	t.Parallel()

	t.Run("correct answer scores full marks", func(t *testing.T) {
		t.Parallel()
		result := QuizAnswer{SelectedIndex: 0}.Score(quizCheck())
		assert.True(t, result.Valid)
		assert.Equal(t, 1.0, result.QualityScore)
	})

	t.Run("wrong answer still completes with the explanation", func(t *testing.T) {
		t.Parallel()
		result := QuizAnswer{SelectedIndex: 2}.Score(quizCheck())
		assert.True(t, result.Valid, "a wrong answer is still a completion")
		assert.Equal(t, 0.3, result.QualityScore)
		assert.Equal(t, "The ease factor drives the interval growth.", result.Feedback)
	})

	t.Run("wrong answer without explanation gets generic feedback", func(t *testing.T) {
		t.Parallel()
		check := quizCheck()
		check.Explanation = ""
		result := QuizAnswer{SelectedIndex: 2}.Score(check)
		assert.True(t, result.Valid)
		assert.NotEmpty(t, result.Feedback)
	})

	t.Run("missing knowledge check scores neutral", func(t *testing.T) {
		t.Parallel()
		result := QuizAnswer{SelectedIndex: 0}.Score(nil)
		assert.True(t, result.Valid)
		assert.Equal(t, 0.5, result.QualityScore)
	})
}

func TestEffortReflectionScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		rpe      float64
		expected float64
	}{
		{"moderate effort", 5, 0.5},
		{"maximum effort", 10, 1.0},
		{"beyond the scale clamps to one", 15, 1.0},
		{"negative clamps to zero", -2, 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := EffortReflection{RPE: tc.rpe}.Score(nil)
			assert.True(t, result.Valid)
			assert.InDelta(t, tc.expected, result.QualityScore, 1e-9)
		})
	}
}

func TestAttestationScore(t *testing.T) {
	t.Parallel()
	result := Attestation{}.Score(nil)
	assert.True(t, result.Valid)
	assert.Equal(t, 0.5, result.QualityScore)
}

func TestJournalEntryScore(t *testing.T) {
	t.Parallel()

	t.Run("too short is rejected", func(t *testing.T) {
		t.Parallel()
		result := JournalEntry{Text: "meh"}.Score(nil)
		assert.False(t, result.Valid)
		assert.Equal(t, 0.0, result.QualityScore)
	})

	t.Run("whitespace padding does not rescue a short entry", func(t *testing.T) {
		t.Parallel()
		result := JournalEntry{Text: "   ok    \n\t  "}.Score(nil)
		assert.False(t, result.Valid)
	})

	t.Run("scores by word count toward fifty words", func(t *testing.T) {
		t.Parallel()
		result := JournalEntry{Text: strings.Repeat("word ", 25)}.Score(nil)
		assert.True(t, result.Valid)
		assert.InDelta(t, 0.5, result.QualityScore, 1e-9)
	})

	t.Run("long entries cap at one", func(t *testing.T) {
		t.Parallel()
		result := JournalEntry{Text: strings.Repeat("word ", 80)}.Score(nil)
		assert.True(t, result.Valid)
		assert.Equal(t, 1.0, result.QualityScore)
	})
}

func TestParsePayload(t *testing.T) {
	t.Parallel()

	t.Run("selects the variant for each validation type", func(t *testing.T) {
		t.Parallel()
		p, err := ParsePayload(domain.ValidationKnowledgeQuiz, json.RawMessage(`{"selected_index": 1}`))
		require.NoError(t, err)
		assert.Equal(t, QuizAnswer{SelectedIndex: 1}, p)

		p, err = ParsePayload(domain.ValidationEffortReflection, json.RawMessage(`{"rpe": 7}`))
		require.NoError(t, err)
		assert.Equal(t, EffortReflection{RPE: 7}, p)

		p, err = ParsePayload(domain.ValidationCompletionAttestation, nil)
		require.NoError(t, err)
		assert.Equal(t, Attestation{}, p)

		p, err = ParsePayload(domain.ValidationJournalEntry, json.RawMessage(`{"text": "learned a lot today"}`))
		require.NoError(t, err)
		assert.Equal(t, JournalEntry{Text: "learned a lot today"}, p)
	})

	t.Run("unknown type falls back to a neutral payload", func(t *testing.T) {
		t.Parallel()
		p, err := ParsePayload(domain.ValidationType("peer_review"), json.RawMessage(`{"anything": true}`))
		require.NoError(t, err)
		assert.Equal(t, UnknownPayload{}, p)
	})

	t.Run("malformed data maps to a validation error", func(t *testing.T) {
		t.Parallel()
		_, err := ParsePayload(domain.ValidationKnowledgeQuiz, json.RawMessage(`{not json`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil data yields zero-valued payloads", func(t *testing.T) {
		t.Parallel()
		p, err := ParsePayload(domain.ValidationKnowledgeQuiz, nil)
		require.NoError(t, err)
		assert.Equal(t, QuizAnswer{}, p)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	result, err := Validate(domain.ValidationKnowledgeQuiz, json.RawMessage(`{"selected_index": 0}`), quizCheck())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 1.0, result.QualityScore)

	_, err = Validate(domain.ValidationJournalEntry, json.RawMessage(`[42]`), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
