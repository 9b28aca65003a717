package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/models"
	"taskflow/internal/storage"
	"taskflow/internal/storage/memory"
)

func TestSeed(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, storage.Seed(ctx, store))

	members, err := store.ReadMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 6)

	tasks, err := store.ReadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 6)

	// Every blocked fixture task carries a reason.
	for _, task := range tasks {
		if task.Status == models.StatusBlocked {
			assert.NotEmpty(t, task.BlockingReason, task.ID)
		}
	}

	// Assignees resolve to seeded members.
	byID := make(map[string]models.TeamMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	for _, task := range tasks {
		if task.AssigneeID == nil {
			continue
		}
		member, ok := byID[*task.AssigneeID]
		require.True(t, ok, task.ID)
		require.NotNil(t, task.AssigneeName)
		assert.Equal(t, member.Name, *task.AssigneeName)
	}
}

func TestSeedIdempotent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, storage.Seed(ctx, store))

	// A second seed with existing data is a no-op.
	require.NoError(t, store.WriteTasks(ctx, nil))
	require.NoError(t, storage.Seed(ctx, store))

	tasks, err := store.ReadTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
