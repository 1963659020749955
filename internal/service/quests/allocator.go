package quests

import (
	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/google/uuid"
)

// Daily allocation limits.
const (
	DailyQuestCount   = 5
	MaxSameTypePerDay = 2
)

// Allocate selects today's quests from the candidate tasks in their roadmap
// order. completedToday maps task IDs already finished today;
// typeCountsToday carries per-type counts of those completions, which count
// against the diversity cap alongside this pass's own selections.
//
// The first pass enforces at most MaxSameTypePerDay of any quest type. When
// the candidates lack the type diversity to fill all five slots, a second
// pass tops up from the same order ignoring the cap: the five-item target
// wins over diversity.
//
// Pure selection over read data; no side effects.
func Allocate(
	candidates []*domain.Task,
	completedToday map[uuid.UUID]bool,
	typeCountsToday map[domain.QuestType]int,
) []*domain.Task {
	selected := make([]*domain.Task, 0, DailyQuestCount)
	selectedIDs := make(map[uuid.UUID]bool, DailyQuestCount)

	typeCounts := make(map[domain.QuestType]int, len(typeCountsToday))
	for t, n := range typeCountsToday {
		typeCounts[t] = n
	}

	for _, task := range candidates {
		if len(selected) == DailyQuestCount {
			break
		}
		if completedToday[task.ID] {
			continue
		}
		if typeCounts[task.QuestType] >= MaxSameTypePerDay {
			continue
		}
		selected = append(selected, task)
		selectedIDs[task.ID] = true
		typeCounts[task.QuestType]++
	}

	if len(selected) < DailyQuestCount {
		for _, task := range candidates {
			if len(selected) == DailyQuestCount {
				break
			}
			if completedToday[task.ID] || selectedIDs[task.ID] {
				continue
			}
			selected = append(selected, task)
			selectedIDs[task.ID] = true
		}
	}

	return selected
}
