package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/apperr"
	"taskflow/internal/models"
)

func TestAddDailyUpdate(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "parent"})

	*now = now.Add(time.Minute)
	update, err := svc.AddDailyUpdate(ctx, task.ID, alice.ID, "  workflow passing  ")
	require.NoError(t, err)

	assert.Equal(t, "workflow passing", update.Content)
	assert.Equal(t, "Alice Chen", update.AuthorName)
	assert.False(t, update.Edited)
	assert.Equal(t, update.CreatedAt, update.UpdatedAt)

	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, got.DailyUpdates, 1)
	assert.True(t, got.UpdatedAt.After(task.UpdatedAt))
}

func TestAddDailyUpdateOrdering(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "parent"})

	first, err := svc.AddDailyUpdate(ctx, task.ID, alice.ID, "first")
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	second, err := svc.AddDailyUpdate(ctx, task.ID, alice.ID, "second")
	require.NoError(t, err)

	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, got.DailyUpdates, 2)
	// Newest first.
	assert.Equal(t, second.ID, got.DailyUpdates[0].ID)
	assert.Equal(t, first.ID, got.DailyUpdates[1].ID)
}

func TestAddDailyUpdateAuthorChecks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	eve := seedMember(t, svc, "Eve Johnson", "eve@devops.io", false)
	task := seedTask(t, svc, CreateTaskInput{Title: "parent"})

	_, err := svc.AddDailyUpdate(ctx, task.ID, "ghost", "content")
	require.Error(t, err)
	assert.Equal(t, "Author not found", err.Error())
	assert.Equal(t, apperr.KindReference, apperr.KindOf(err))

	_, err = svc.AddDailyUpdate(ctx, task.ID, eve.ID, "content")
	require.Error(t, err)
	assert.Equal(t, "Author not found", err.Error())

	_, err = svc.AddDailyUpdate(ctx, "ghost", eve.ID, "content")
	require.Error(t, err)
	assert.Equal(t, "Task not found", err.Error())
}

func TestAuthorNameIsSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "parent"})

	_, err := svc.AddDailyUpdate(ctx, task.ID, alice.ID, "content")
	require.NoError(t, err)

	_, err = svc.UpdateMember(ctx, alice.ID, UpdateMemberInput{Name: models.Some("Alice Chen-Wong")})
	require.NoError(t, err)

	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, got.DailyUpdates, 1)
	assert.Equal(t, "Alice Chen", got.DailyUpdates[0].AuthorName, "name stays as it was at creation")
}

func TestEditDailyUpdate(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "parent"})
	update, err := svc.AddDailyUpdate(ctx, task.ID, alice.ID, "draft")
	require.NoError(t, err)

	*now = now.Add(23 * time.Hour)
	require.NoError(t, svc.EditDailyUpdate(ctx, task.ID, update.ID, "  revised  "))

	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	edited := got.DailyUpdates[0]
	assert.Equal(t, "revised", edited.Content)
	assert.True(t, edited.Edited)
	assert.True(t, edited.UpdatedAt.After(edited.CreatedAt))
}

func TestEditDailyUpdateWindow(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "parent"})
	update, err := svc.AddDailyUpdate(ctx, task.ID, alice.ID, "draft")
	require.NoError(t, err)

	// Exactly 24 hours is already outside the window.
	*now = now.Add(24 * time.Hour)
	err = svc.EditDailyUpdate(ctx, task.ID, update.ID, "too late")
	require.Error(t, err)
	assert.Equal(t, "Updates can only be edited within 24 hours.", err.Error())
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// The stored entry is checked before the payload: an expired update with
	// bad content still reports the window conflict.
	err = svc.EditDailyUpdate(ctx, task.ID, update.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, "Updates can only be edited within 24 hours.", err.Error())
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	err = svc.EditDailyUpdate(ctx, task.ID, "ghost", "x")
	require.Error(t, err)
	assert.Equal(t, "Update not found", err.Error())
}

func TestDeleteDailyUpdate(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "parent"})
	update, err := svc.AddDailyUpdate(ctx, task.ID, alice.ID, "temporary")
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	require.NoError(t, svc.DeleteDailyUpdate(ctx, task.ID, update.ID))

	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.DailyUpdates)

	err = svc.DeleteDailyUpdate(ctx, task.ID, update.ID)
	require.Error(t, err)
	assert.Equal(t, "Update not found", err.Error())
}

func TestDeleteDailyUpdateWindow(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "parent"})
	update, err := svc.AddDailyUpdate(ctx, task.ID, alice.ID, "aging")
	require.NoError(t, err)

	*now = now.Add(25 * time.Hour)
	err = svc.DeleteDailyUpdate(ctx, task.ID, update.ID)
	require.Error(t, err)
	assert.Equal(t, "Updates can only be deleted within 24 hours.", err.Error())
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
