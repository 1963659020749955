package quests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ascendapp/ascend-api/internal/domain"
)

func makeTask(questType domain.QuestType) *domain.Task {
	return &domain.Task{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     "test task",
		QuestType: questType,
	}
}

func questTypes(tasks []*domain.Task) []domain.QuestType {
	types := make([]domain.QuestType, len(tasks))
	for i, task := range tasks {
		types[i] = task.QuestType
	}
	return types
}

func TestAllocateFillsFiveSlotsInOrder(t *testing.T) {
	t.Parallel()
	candidates := []*domain.Task{
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypePractice),
		makeTask(domain.QuestTypeKnowledge),
		makeTask(domain.QuestTypeReflection),
		makeTask(domain.QuestTypeProject),
		makeTask(domain.QuestTypeLearning),
	}

	selected := Allocate(candidates, nil, nil)

	assert.Len(t, selected, DailyQuestCount)
	for i := 0; i < DailyQuestCount; i++ {
		assert.Equal(t, candidates[i].ID, selected[i].ID, "roadmap order preserved at slot %d", i)
	}
}

func TestAllocateEnforcesTypeDiversityCap(t *testing.T) {
	t.Parallel()
	candidates := []*domain.Task{
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypeLearning), // third learning: capped out
		makeTask(domain.QuestTypePractice),
		makeTask(domain.QuestTypePractice),
		makeTask(domain.QuestTypeKnowledge),
	}

	selected := Allocate(candidates, nil, nil)

	assert.Len(t, selected, DailyQuestCount)
	assert.Equal(t, []domain.QuestType{
		domain.QuestTypeLearning,
		domain.QuestTypeLearning,
		domain.QuestTypePractice,
		domain.QuestTypePractice,
		domain.QuestTypeKnowledge,
	}, questTypes(selected))
}

func TestAllocateSecondPassTopsUpWhenDiversityRunsOut(t *testing.T) {
	t.Parallel()
	// All candidates share one type; the cap alone would stop at two.
	candidates := []*domain.Task{
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypeLearning),
	}

	selected := Allocate(candidates, nil, nil)

	assert.Len(t, selected, DailyQuestCount, "five slots win over type diversity")
	seen := map[uuid.UUID]bool{}
	for _, task := range selected {
		assert.False(t, seen[task.ID], "no task selected twice")
		seen[task.ID] = true
	}
}

func TestAllocateSkipsTasksCompletedToday(t *testing.T) {
	t.Parallel()
	candidates := []*domain.Task{
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypePractice),
		makeTask(domain.QuestTypeKnowledge),
	}
	completed := map[uuid.UUID]bool{candidates[0].ID: true}

	selected := Allocate(candidates, completed, nil)

	assert.Len(t, selected, 2)
	assert.Equal(t, candidates[1].ID, selected[0].ID)
	assert.Equal(t, candidates[2].ID, selected[1].ID)
}

func TestAllocateCountsTodaysCompletionsAgainstTheCap(t *testing.T) {
	t.Parallel()
	candidates := []*domain.Task{
		makeTask(domain.QuestTypeLearning),
		makeTask(domain.QuestTypePractice),
		makeTask(domain.QuestTypeKnowledge),
	}
	// Two learning quests already done today: the cap is spent.
	typeCounts := map[domain.QuestType]int{domain.QuestTypeLearning: 2}

	selected := Allocate(candidates, nil, typeCounts)

	assert.Equal(t, []domain.QuestType{
		domain.QuestTypePractice,
		domain.QuestTypeKnowledge,
		domain.QuestTypeLearning,
	}, questTypes(selected), "capped type is deferred to the top-up pass")
	assert.Equal(t, 2, typeCounts[domain.QuestTypeLearning], "caller's map is not mutated")
}

func TestAllocateFewCandidates(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Allocate(nil, nil, nil))

	candidates := []*domain.Task{makeTask(domain.QuestTypeProject)}
	assert.Len(t, Allocate(candidates, nil, nil), 1)
}
