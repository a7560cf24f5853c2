package awards

// Evaluate returns the awards newly earned by a task completion, in catalog
// order. It is pure: the caller commits the resulting UserAward rows.
//
// tasks is the pre-toggle snapshot of the user's full task list, taken before
// the completion flag of completedTaskID is persisted. The completed-task
// count is therefore pre-incremented by one to cover the in-flight toggle.
// Category mastery is evaluated against the same snapshot, so it lags the
// in-flight completion by one task; that asymmetry is long-standing observed
// behavior and is kept rather than corrected.
func Evaluate(tasks []TaskSnapshot, completedTaskID string, earned map[string]bool, streakDays int) []Award {
	completedCount := 1
	for _, t := range tasks {
		if t.Completed {
			completedCount++
		}
	}

	var newAwards []Award
	for _, award := range Catalog {
		if earned[award.ID] {
			continue
		}

		qualifies := false
		switch award.Requirement.Type {
		case ReqTasksCompleted:
			qualifies = completedCount >= award.Requirement.Value
		case ReqStreakDays:
			qualifies = streakDays >= award.Requirement.Value
		case ReqCategoryMaster:
			categoryTotal := 0
			categoryDone := 0
			for _, t := range tasks {
				if t.Category == award.Requirement.Category {
					categoryTotal++
					if t.Completed {
						categoryDone++
					}
				}
			}
			qualifies = categoryTotal > 0 && categoryDone >= categoryTotal
		}

		if qualifies {
			newAwards = append(newAwards, award)
		}
	}

	return newAwards
}
