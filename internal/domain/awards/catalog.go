package awards

// Catalog is the static award list, evaluated in order.
var Catalog = []Award{
	{
		ID:          "first-task",
		Name:        "First Steps",
		Description: "Complete your first maintenance task",
		Icon:        "🎯",
		Points:      10,
		Tier:        TierBronze,
		Requirement: Requirement{Type: ReqTasksCompleted, Value: 1},
	},
	{
		ID:          "task-master-10",
		Name:        "Task Master",
		Description: "Complete 10 maintenance tasks",
		Icon:        "⭐",
		Points:      50,
		Tier:        TierSilver,
		Requirement: Requirement{Type: ReqTasksCompleted, Value: 10},
	},
	{
		ID:          "streak-7",
		Name:        "Week Warrior",
		Description: "Complete tasks for 7 consecutive days",
		Icon:        "🔥",
		Points:      75,
		Tier:        TierGold,
		Requirement: Requirement{Type: ReqStreakDays, Value: 7},
	},
	{
		ID:          "daily-master",
		Name:        "Daily Champion",
		Description: "Complete all daily maintenance tasks",
		Icon:        "☀️",
		Points:      30,
		Tier:        TierBronze,
		Requirement: Requirement{Type: ReqCategoryMaster, Category: "daily"},
	},
	{
		ID:          "maintenance-legend",
		Name:        "Maintenance Legend",
		Description: "Complete 100 maintenance tasks",
		Icon:        "👑",
		Points:      200,
		Tier:        TierPlatinum,
		Requirement: Requirement{Type: ReqTasksCompleted, Value: 100},
	},
}

// CatalogByID returns the catalog entry with the given id.
func CatalogByID(id string) (Award, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Award{}, false
}
