package awards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(completed int, total int) []TaskSnapshot {
	tasks := make([]TaskSnapshot, 0, total)
	for i := 0; i < total; i++ {
		tasks = append(tasks, TaskSnapshot{
			ID:        "task",
			Category:  "weekly",
			Completed: i < completed,
		})
	}
	return tasks
}

func TestEvaluate_FirstTaskFiresOnFirstCompletion(t *testing.T) {
	// Pre-toggle snapshot shows zero completions; the +1 adjustment makes it 1.
	got := Evaluate(snapshotOf(0, 5), "weekly-1", map[string]bool{}, 0)

	require.Len(t, got, 1)
	assert.Equal(t, "first-task", got[0].ID)
}

func TestEvaluate_TaskMasterAtTen(t *testing.T) {
	earned := map[string]bool{"first-task": true}

	got := Evaluate(snapshotOf(8, 20), "task", earned, 0)
	assert.Empty(t, got)

	got = Evaluate(snapshotOf(9, 20), "task", earned, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "task-master-10", got[0].ID)
}

func TestEvaluate_CategoryMasterUnderFiresOnPreToggleSnapshot(t *testing.T) {
	// Three daily tasks, two complete, the third being toggled right now. The
	// snapshot predates the flag flip, so mastery does not fire on this call.
	tasks := []TaskSnapshot{
		{ID: "daily-1", Category: "daily", Completed: true},
		{ID: "daily-2", Category: "daily", Completed: true},
		{ID: "daily-3", Category: "daily", Completed: false},
	}
	earned := map[string]bool{"first-task": true}

	got := Evaluate(tasks, "daily-3", earned, 0)
	for _, a := range got {
		assert.NotEqual(t, "daily-master", a.ID)
	}
}

func TestEvaluate_CategoryMasterFiresWhenSnapshotComplete(t *testing.T) {
	tasks := []TaskSnapshot{
		{ID: "daily-1", Category: "daily", Completed: true},
		{ID: "daily-2", Category: "daily", Completed: true},
		{ID: "daily-3", Category: "daily", Completed: true},
		{ID: "weekly-1", Category: "weekly", Completed: false},
	}
	earned := map[string]bool{"first-task": true}

	got := Evaluate(tasks, "weekly-1", earned, 0)
	ids := make([]string, 0, len(got))
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "daily-master")
}

func TestEvaluate_CategoryMasterNeedsAtLeastOneTask(t *testing.T) {
	// No daily tasks at all (preset-narrowed checklist) must not grant mastery.
	tasks := []TaskSnapshot{
		{ID: "weekly-1", Category: "weekly", Completed: false},
	}

	got := Evaluate(tasks, "weekly-1", map[string]bool{}, 0)
	for _, a := range got {
		assert.NotEqual(t, "daily-master", a.ID)
	}
}

func TestEvaluate_StreakAward(t *testing.T) {
	earned := map[string]bool{"first-task": true}

	got := Evaluate(snapshotOf(0, 3), "task", earned, 6)
	assert.Empty(t, got)

	got = Evaluate(snapshotOf(0, 3), "task", earned, 7)
	require.Len(t, got, 1)
	assert.Equal(t, "streak-7", got[0].ID)
}

func TestEvaluate_EarnedGuardPreventsDuplicates(t *testing.T) {
	earned := map[string]bool{}
	for _, a := range Catalog {
		earned[a.ID] = true
	}

	got := Evaluate(snapshotOf(100, 200), "task", earned, 100)
	assert.Empty(t, got)
}

func TestEvaluate_ResultsInCatalogOrder(t *testing.T) {
	// 9 pre-toggle completions with a 7-day streak earns first-task,
	// task-master-10 and streak-7 at once, in catalog order.
	got := Evaluate(snapshotOf(9, 20), "task", map[string]bool{}, 7)

	require.Len(t, got, 3)
	assert.Equal(t, "first-task", got[0].ID)
	assert.Equal(t, "task-master-10", got[1].ID)
	assert.Equal(t, "streak-7", got[2].ID)
}

func TestEvaluate_EveryResultExistsInCatalog(t *testing.T) {
	got := Evaluate(snapshotOf(99, 100), "task", map[string]bool{}, 10)
	require.NotEmpty(t, got)

	for _, a := range got {
		_, ok := CatalogByID(a.ID)
		assert.True(t, ok, "award %s not in catalog", a.ID)
	}
}

func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	tasks := snapshotOf(2, 5)
	earned := map[string]bool{"first-task": true}

	Evaluate(tasks, "task", earned, 3)

	assert.Equal(t, snapshotOf(2, 5), tasks)
	assert.Equal(t, map[string]bool{"first-task": true}, earned)
}
