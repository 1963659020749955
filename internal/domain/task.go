package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents where a roadmap task sits in its lifecycle.
// Statuses form a simple progression: locked -> available -> in_progress ->
// completed, with skipped as an exit at any point. The roadmap subsystem
// owns these transitions; the progression core only reads candidates and
// marks tasks completed.
type TaskStatus string

// Possible task status values
const (
	TaskStatusLocked     TaskStatus = "locked"
	TaskStatusAvailable  TaskStatus = "available"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusSkipped    TaskStatus = "skipped"
)

// QuestType categorizes a task for the daily diversity constraint.
type QuestType string

// Known quest types
const (
	QuestTypeLearning   QuestType = "learning"
	QuestTypePractice   QuestType = "practice"
	QuestTypeKnowledge  QuestType = "knowledge"
	QuestTypeReflection QuestType = "reflection"
	QuestTypeProject    QuestType = "project"
)

// ValidationType selects the strategy used to score a completion payload.
type ValidationType string

// Possible validation type values
const (
	ValidationKnowledgeQuiz         ValidationType = "knowledge_quiz"
	ValidationEffortReflection      ValidationType = "effort_reflection"
	ValidationCompletionAttestation ValidationType = "completion_attestation"
	ValidationJournalEntry          ValidationType = "journal_entry"
)

// KnowledgeCheck is the quiz payload attached to knowledge_quiz tasks.
type KnowledgeCheck struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Task is a candidate quest from the user's roadmap. The roadmap subsystem
// creates and orders tasks; the allocator reads them and the completion flow
// flips Status to completed.
type Task struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	Title            string          `json:"title"`
	QuestType        QuestType       `json:"quest_type"`
	TaskType         string          `json:"task_type"`
	XPReward         int             `json:"xp_reward"`
	CoinReward       int             `json:"coin_reward"`
	Rarity           string          `json:"rarity"`
	DifficultyTier   int             `json:"difficulty_tier"`
	ValidationType   ValidationType  `json:"validation_type"`
	KnowledgeCheck   *KnowledgeCheck `json:"knowledge_check,omitempty"`
	SkillDomain      string          `json:"skill_domain"`
	EstimatedMinutes int             `json:"estimated_minutes"`
	Status           TaskStatus      `json:"status"`
	Position         int             `json:"position"` // Natural roadmap order
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Common validation errors for QuestCompletion
var (
	ErrEmptyCompletionUserID = errors.New("quest completion user ID cannot be empty")
	ErrEmptyCompletionTaskID = errors.New("quest completion task ID cannot be empty")
)

// QuestCompletion records that a user finished a task. Written exactly once
// per (user, task); the allocator reconstructs "already done today" and
// per-type counts from these rows.
type QuestCompletion struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	TaskID      uuid.UUID `json:"task_id"`
	QuestType   QuestType `json:"quest_type"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewQuestCompletion creates a completion record for a task.
func NewQuestCompletion(
	userID, taskID uuid.UUID,
	questType QuestType,
	now time.Time,
) (*QuestCompletion, error) {
	c := &QuestCompletion{
		ID:          uuid.New(),
		UserID:      userID,
		TaskID:      taskID,
		QuestType:   questType,
		CompletedAt: now,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the QuestCompletion has valid data.
func (c *QuestCompletion) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrEmptyCompletionUserID
	}

	if c.TaskID == uuid.Nil {
		return ErrEmptyCompletionTaskID
	}

	return nil
}
