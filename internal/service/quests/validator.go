package quests

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ascendapp/ascend-api/internal/domain"
)

// ValidationResult scores a completion payload. The score is informational;
// it never gates the task's fixed XP reward.
type ValidationResult struct {
	Valid        bool    `json:"valid"`
	QualityScore float64 `json:"quality_score"`
	Feedback     string  `json:"feedback"`
}

// CompletionPayload is a closed set of validation payloads, one variant per
// validation strategy. Each variant carries its own typed shape; Score
// evaluates it against the task's knowledge check where relevant.
type CompletionPayload interface {
	Score(check *domain.KnowledgeCheck) ValidationResult
}

// QuizAnswer is the knowledge_quiz payload.
type QuizAnswer struct {
	SelectedIndex int `json:"selected_index"`
}

// Score compares the answer to the check's correct index. A wrong answer
// still counts as a completion; it just scores lower.
func (a QuizAnswer) Score(check *domain.KnowledgeCheck) ValidationResult {
	if check == nil {
		return ValidationResult{Valid: true, QualityScore: 0.5, Feedback: "No knowledge check attached."}
	}
	if a.SelectedIndex == check.CorrectIndex {
		return ValidationResult{Valid: true, QualityScore: 1.0, Feedback: "Correct!"}
	}
	feedback := check.Explanation
	if feedback == "" {
		feedback = "Not quite; review the material and keep going."
	}
	return ValidationResult{Valid: true, QualityScore: 0.3, Feedback: feedback}
}

// EffortReflection is the effort_reflection payload: a 1-10 rate of
// perceived exertion.
type EffortReflection struct {
	RPE float64 `json:"rpe"`
}

// Score maps exertion onto [0,1].
func (r EffortReflection) Score(_ *domain.KnowledgeCheck) ValidationResult {
	score := math.Min(1.0, r.RPE/10)
	if score < 0 {
		score = 0
	}
	return ValidationResult{Valid: true, QualityScore: score, Feedback: "Effort logged."}
}

// Attestation is the completion_attestation payload; the user simply claims
// the task is done.
type Attestation struct{}

// Score is a flat midpoint: the claim is accepted but carries no signal.
func (Attestation) Score(_ *domain.KnowledgeCheck) ValidationResult {
	return ValidationResult{Valid: true, QualityScore: 0.5, Feedback: "Marked complete."}
}

// JournalEntry is the journal_entry payload.
type JournalEntry struct {
	Text string `json:"text"`
}

// Score requires at least 10 trimmed characters, then scores by word count
// against a 50-word target.
func (j JournalEntry) Score(_ *domain.KnowledgeCheck) ValidationResult {
	trimmed := strings.TrimSpace(j.Text)
	if len(trimmed) < 10 {
		return ValidationResult{
			Valid:        false,
			QualityScore: 0,
			Feedback:     "Write at least a sentence about what you learned.",
		}
	}
	words := len(strings.Fields(trimmed))
	return ValidationResult{
		Valid:        true,
		QualityScore: math.Min(1.0, float64(words)/50),
		Feedback:     "Journal entry recorded.",
	}
}

// UnknownPayload stands in for validation types this core does not know;
// completion proceeds with a neutral score.
type UnknownPayload struct{}

// Score defaults to valid with a neutral score.
func (UnknownPayload) Score(_ *domain.KnowledgeCheck) ValidationResult {
	return ValidationResult{Valid: true, QualityScore: 0.5, Feedback: "Marked complete."}
}

// ParsePayload decodes raw validation data into the variant selected by the
// validation type. Raw may be nil for types that carry no data.
func ParsePayload(vtype domain.ValidationType, raw json.RawMessage) (CompletionPayload, error) {
	switch vtype {
	case domain.ValidationKnowledgeQuiz:
		var p QuizAnswer
		if err := unmarshalPayload(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	case domain.ValidationEffortReflection:
		var p EffortReflection
		if err := unmarshalPayload(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	case domain.ValidationCompletionAttestation:
		return Attestation{}, nil

	case domain.ValidationJournalEntry:
		var p JournalEntry
		if err := unmarshalPayload(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	default:
		return UnknownPayload{}, nil
	}
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: malformed validation data: %v", domain.ErrValidation, err)
	}
	return nil
}

// Validate scores a completion payload against the task's validation type.
// Stateless; exposed both for the echo endpoint and for the completion flow.
func Validate(
	vtype domain.ValidationType,
	raw json.RawMessage,
	check *domain.KnowledgeCheck,
) (ValidationResult, error) {
	payload, err := ParsePayload(vtype, raw)
	if err != nil {
		return ValidationResult{}, err
	}
	return payload.Score(check), nil
}
