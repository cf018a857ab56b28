// Package storetest provides a behavioral test suite that every
// store.TaskStore implementation must pass. Backends run it from their own
// tests with a factory returning an empty store.
package storetest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty TaskStore. Cleanup should be registered on t.
type Factory func(t *testing.T) store.TaskStore

// CreationGap separates consecutive creates so stores with coarse server
// clocks still order them deterministically.
var CreationGap = 5 * time.Millisecond

// RunTaskStoreContract runs every contract test against stores from newStore.
func RunTaskStoreContract(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("CreateThenGetAll", func(t *testing.T) { testCreateThenGetAll(t, newStore(t)) })
	t.Run("GetAllEmpty", func(t *testing.T) { testGetAllEmpty(t, newStore(t)) })
	t.Run("FindByID", func(t *testing.T) { testFindByID(t, newStore(t)) })
	t.Run("DeleteByIDOnce", func(t *testing.T) { testDeleteByIDOnce(t, newStore(t)) })
	t.Run("SearchEmptyTermMatchesAll", func(t *testing.T) { testSearchEmptyTerm(t, newStore(t)) })
	t.Run("SearchCaseInsensitive", func(t *testing.T) { testSearchCaseInsensitive(t, newStore(t)) })
	t.Run("TopNBounds", func(t *testing.T) { testTopNBounds(t, newStore(t)) })
	t.Run("DeleteAll", func(t *testing.T) { testDeleteAll(t, newStore(t)) })
}

// createTasks creates one task per title, in order, separated by CreationGap.
func createTasks(t *testing.T, s store.TaskStore, titles ...string) []domain.Task {
	t.Helper()

	created := make([]domain.Task, 0, len(titles))
	for i, title := range titles {
		if i > 0 {
			time.Sleep(CreationGap)
		}
		task, err := s.Create(context.Background(), title)
		require.NoError(t, err, "Create(%q) should succeed", title)
		require.NotNil(t, task)
		created = append(created, *task)
	}
	return created
}

// ids returns the sorted identifiers of tasks.
func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	sort.Strings(out)
	return out
}

func testCreateThenGetAll(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	task, err := s.Create(ctx, "Buy milk")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.NotEmpty(t, task.ID, "created task should have an identifier")
	assert.Equal(t, "Buy milk", task.Title)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, task.ID, all[0].ID)
	assert.Equal(t, "Buy milk", all[0].Title)

	second, err := s.Create(ctx, "Buy milk")
	require.NoError(t, err)
	assert.NotEqual(t, task.ID, second.ID, "identifiers must be unique")
}

func testGetAllEmpty(t *testing.T, s store.TaskStore) {
	all, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all, "an empty collection should yield an empty slice, not nil")
	assert.Empty(t, all)
}

func testFindByID(t *testing.T, s store.TaskStore) {
	ctx := context.Background()
	created := createTasks(t, s, "Walk the dog")

	found, err := s.FindByID(ctx, created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created[0].ID, found.ID)
	assert.Equal(t, "Walk the dog", found.Title)

	missing, err := s.FindByID(ctx, "does-not-exist")
	assert.Nil(t, missing)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.NotErrorIs(t, err, store.ErrStorage, "absence is not a storage failure")
}

func testDeleteByIDOnce(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	removed, err := s.DeleteByID(ctx, "never-created")
	require.NoError(t, err)
	assert.False(t, removed, "unknown identifiers are not removed")

	created := createTasks(t, s, "Pay rent", "Call mum")

	removed, err = s.DeleteByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.True(t, removed, "first delete should remove the task")

	removed, err = s.DeleteByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete of the same id should report false")

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{created[1].ID}, ids(all))

	_, err = s.FindByID(ctx, created[0].ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func testSearchEmptyTerm(t *testing.T, s store.TaskStore) {
	ctx := context.Background()
	createTasks(t, s, "alpha", "Beta", "gamma ray")

	all, err := s.GetAll(ctx)
	require.NoError(t, err)

	matched, err := s.SearchByTitle(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ids(all), ids(matched))
}

func testSearchCaseInsensitive(t *testing.T, s store.TaskStore) {
	ctx := context.Background()
	created := createTasks(t, s, "Foo fighters", "FOOD shopping", "bar", "afoot")

	upper, err := s.SearchByTitle(ctx, "FOO")
	require.NoError(t, err)
	lower, err := s.SearchByTitle(ctx, "foo")
	require.NoError(t, err)

	want := ids([]domain.Task{created[0], created[1], created[3]})
	assert.Equal(t, want, ids(upper))
	assert.Equal(t, ids(upper), ids(lower))

	none, err := s.SearchByTitle(ctx, "milk")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	accented := createTasks(t, s, "École du soir")
	for _, term := range []string{"ÉCOLE", "école", "éCoLe"} {
		matches, err := s.SearchByTitle(ctx, term)
		require.NoError(t, err)
		assert.Equal(t, ids(accented), ids(matches), "SearchByTitle(%q)", term)
	}
}

func testTopNBounds(t *testing.T, s store.TaskStore) {
	ctx := context.Background()
	created := createTasks(t, s, "first", "second", "third")

	zero, err := s.TopN(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, zero)
	assert.Empty(t, zero)

	negative, err := s.TopN(ctx, -3)
	require.NoError(t, err)
	assert.Empty(t, negative)

	two, err := s.TopN(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, created[2].ID, two[0].ID, "newest task first")
	assert.Equal(t, created[1].ID, two[1].ID)

	all, err := s.TopN(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, created[2].ID, all[0].ID)
	assert.Equal(t, created[1].ID, all[1].ID)
	assert.Equal(t, created[0].ID, all[2].ID)
}

func testDeleteAll(t *testing.T, s store.TaskStore) {
	ctx := context.Background()
	createTasks(t, s, "one", "two", "three")

	require.NoError(t, s.DeleteAll(ctx))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.DeleteAll(ctx), "deleting from an empty store is a no-op")
}
