package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/apperr"
	"taskflow/internal/models"
	"taskflow/internal/query"
)

func TestCreateTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)

	task, err := svc.CreateTask(ctx, CreateTaskInput{
		Title:       "  Set up CI pipeline  ",
		Description: "GitHub Actions for staging",
		Status:      models.StatusInProgress,
		Priority:    models.PriorityHigh,
		AssigneeID:  &alice.ID,
		GearID:      "1024",
	})
	require.NoError(t, err)

	assert.Equal(t, "Set up CI pipeline", task.Title)
	assert.Equal(t, models.StatusInProgress, task.Status)
	require.NotNil(t, task.AssigneeName)
	assert.Equal(t, "Alice Chen", *task.AssigneeName)
	assert.Equal(t, "1024", task.GearID)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.NotNil(t, task.SubTasks)
	assert.NotNil(t, task.DailyUpdates)
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CreateTaskInput
		wantErr string
	}{
		{
			name:    "empty title",
			in:      CreateTaskInput{Title: "  ", Status: models.StatusToDo, Priority: models.PriorityLow},
			wantErr: "title must not be empty",
		},
		{
			name:    "unknown status",
			in:      CreateTaskInput{Title: "x", Status: "Paused", Priority: models.PriorityLow},
			wantErr: `invalid status "Paused"`,
		},
		{
			name:    "unknown priority",
			in:      CreateTaskInput{Title: "x", Status: models.StatusToDo, Priority: "Urgent"},
			wantErr: `invalid priority "Urgent"`,
		},
		{
			name:    "bad gear id",
			in:      CreateTaskInput{Title: "x", Status: models.StatusToDo, Priority: models.PriorityLow, GearID: "12"},
			wantErr: "GEAR ID must be 4 digits",
		},
		{
			name:    "blocked without reason",
			in:      CreateTaskInput{Title: "x", Status: models.StatusBlocked, Priority: models.PriorityLow},
			wantErr: "Blocking reason is required for blocked tasks.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}

	// Failed creates must not leave anything behind.
	tasks, err := svc.ListTasks(ctx, query.Filters{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTaskAssigneeChecks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	eve := seedMember(t, svc, "Eve Johnson", "eve@devops.io", false)

	missing := "nope"
	_, err := svc.CreateTask(ctx, CreateTaskInput{
		Title: "x", Status: models.StatusToDo, Priority: models.PriorityLow, AssigneeID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, "Assignee not found", err.Error())
	assert.Equal(t, apperr.KindReference, apperr.KindOf(err))

	// Inactive members cannot take assignments either.
	_, err = svc.CreateTask(ctx, CreateTaskInput{
		Title: "x", Status: models.StatusToDo, Priority: models.PriorityLow, AssigneeID: &eve.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "Assignee not found", err.Error())
}

func TestUpdateTaskPartial(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()
	task := seedTask(t, svc, CreateTaskInput{Title: "original", Description: "desc"})

	*now = now.Add(time.Hour)
	got, err := svc.UpdateTask(ctx, task.ID, UpdateTaskInput{
		Title: models.Some("renamed"),
	})
	require.NoError(t, err)

	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "desc", got.Description, "omitted fields stay untouched")
	assert.True(t, got.UpdatedAt.After(task.UpdatedAt))
	assert.Equal(t, task.CreatedAt, got.CreatedAt)
}

func TestUpdateTaskNullHandling(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "x", AssigneeID: &alice.ID})

	_, err := svc.UpdateTask(ctx, task.ID, UpdateTaskInput{Title: models.Null[string]()})
	require.Error(t, err)
	assert.Equal(t, "title cannot be null", err.Error())

	_, err = svc.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: models.Null[models.Status]()})
	require.Error(t, err)
	assert.Equal(t, "status cannot be null", err.Error())

	// Null assignee clears both the id and the cached name.
	got, err := svc.UpdateTask(ctx, task.ID, UpdateTaskInput{AssigneeID: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)
	assert.Nil(t, got.AssigneeName)
}

func TestUpdateTaskReassignment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	alice := seedMember(t, svc, "Alice Chen", "alice@devops.io", true)
	bob := seedMember(t, svc, "Bob Martinez", "bob@devops.io", true)
	task := seedTask(t, svc, CreateTaskInput{Title: "x", AssigneeID: &alice.ID})

	got, err := svc.UpdateTask(ctx, task.ID, UpdateTaskInput{AssigneeID: models.Some(bob.ID)})
	require.NoError(t, err)
	require.NotNil(t, got.AssigneeName)
	assert.Equal(t, "Bob Martinez", *got.AssigneeName)

	_, err = svc.UpdateTask(ctx, task.ID, UpdateTaskInput{AssigneeID: models.Some("ghost")})
	require.Error(t, err)
	assert.Equal(t, "Assignee not found", err.Error())
}

func TestUpdateTaskBlockedCoupling(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task := seedTask(t, svc, CreateTaskInput{Title: "migration"})

	// Moving into Blocked without a reason fails.
	_, err := svc.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: models.Some(models.StatusBlocked)})
	require.Error(t, err)
	assert.Equal(t, "Blocking reason is required for blocked tasks.", err.Error())

	got, err := svc.UpdateTask(ctx, task.ID, UpdateTaskInput{
		Status:         models.Some(models.StatusBlocked),
		BlockingReason: models.Some("  waiting on DBA approval  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "waiting on DBA approval", got.BlockingReason)

	// The reason ceiling counts characters, not bytes.
	longReason := strings.Repeat("ü", 1000)
	got, err = svc.UpdateTask(ctx, task.ID, UpdateTaskInput{BlockingReason: models.Some(longReason)})
	require.NoError(t, err)
	assert.Equal(t, longReason, got.BlockingReason)

	_, err = svc.UpdateTask(ctx, task.ID, UpdateTaskInput{BlockingReason: models.Some(strings.Repeat("ü", 1001))})
	require.Error(t, err)
	assert.Equal(t, "blocking reason must be at most 1000 characters", err.Error())

	// Leaving Blocked clears the reason even when the payload omits it.
	got, err = svc.UpdateTask(ctx, task.ID, UpdateTaskInput{Status: models.Some(models.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, got.Status)
	assert.Equal(t, "", got.BlockingReason)
}

func TestGetTaskNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetTask(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "Task not found", err.Error())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	task := seedTask(t, svc, CreateTaskInput{Title: "ephemeral"})

	require.NoError(t, svc.DeleteTask(ctx, task.ID))

	_, err := svc.GetTask(ctx, task.ID)
	assert.Equal(t, "Task not found", err.Error())

	err = svc.DeleteTask(ctx, task.ID)
	require.Error(t, err)
	assert.Equal(t, "Task not found", err.Error())
}

func TestListTasksFilterAndSort(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	low := seedTask(t, svc, CreateTaskInput{Title: "low item", Priority: models.PriorityLow})
	*now = now.Add(time.Minute)
	high := seedTask(t, svc, CreateTaskInput{Title: "high item", Priority: models.PriorityHigh})

	tasks, err := svc.ListTasks(ctx, query.Filters{Sort: query.SortPriority})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, high.ID, tasks[0].ID)
	assert.Equal(t, low.ID, tasks[1].ID)

	tasks, err = svc.ListTasks(ctx, query.Filters{Search: "HIGH"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, high.ID, tasks[0].ID)

	_, err = svc.ListTasks(ctx, query.Filters{Sort: "created"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
