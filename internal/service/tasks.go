package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"taskflow/internal/apperr"
	"taskflow/internal/models"
	"taskflow/internal/query"
	"taskflow/internal/validate"
)

const (
	msgTaskNotFound     = "Task not found"
	msgAssigneeNotFound = "Assignee not found"
	msgAuthorNotFound   = "Author not found"
	msgBlockingRequired = "Blocking reason is required for blocked tasks."
)

// CreateTaskInput carries the fields accepted when creating a task.
type CreateTaskInput struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Status         models.Status   `json:"status"`
	Priority       models.Priority `json:"priority"`
	AssigneeID     *string         `json:"assigneeId"`
	GearID         string          `json:"gearId"`
	BlockingReason string          `json:"blockingReason"`
}

// UpdateTaskInput is a partial task update. Omitted keys leave the field
// untouched; an explicit null clears nullable fields and is rejected for
// fields that must always hold a value.
type UpdateTaskInput struct {
	Title          models.Optional[string]          `json:"title"`
	Description    models.Optional[string]          `json:"description"`
	Status         models.Optional[models.Status]   `json:"status"`
	Priority       models.Optional[models.Priority] `json:"priority"`
	AssigneeID     models.Optional[string]          `json:"assigneeId"`
	GearID         models.Optional[string]          `json:"gearId"`
	BlockingReason models.Optional[string]          `json:"blockingReason"`
}

// ListTasks reads all tasks and applies the shared filter/sort rules.
// Defaults: no filters, most-recently-updated first.
func (s *Service) ListTasks(ctx context.Context, f query.Filters) ([]models.Task, error) {
	if f.Sort != "" && !f.Sort.Valid() {
		return nil, apperr.Validation("invalid sort %q", string(f.Sort))
	}
	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return nil, err
	}
	return query.FilterAndSort(tasks, f), nil
}

// GetTask returns a single task by id.
func (s *Service) GetTask(ctx context.Context, id string) (*models.Task, error) {
	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, apperr.NotFound(msgTaskNotFound)
}

// CreateTask validates the input, resolves the assignee against active
// members and appends the new task.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title, err := validate.RequiredText(in.Title, validate.MaxTitleLen, "title")
	if err != nil {
		return nil, err
	}
	description, err := validate.OptionalText(in.Description, validate.MaxDescriptionLen, "description")
	if err != nil {
		return nil, err
	}
	if err := validate.Status(in.Status); err != nil {
		return nil, err
	}
	if err := validate.Priority(in.Priority); err != nil {
		return nil, err
	}
	gearID, err := validate.GearID(in.GearID)
	if err != nil {
		return nil, err
	}
	reason, err := blockingReasonFor(in.Status, in.BlockingReason)
	if err != nil {
		return nil, err
	}

	var assigneeID, assigneeName *string
	if in.AssigneeID != nil {
		member, err := s.resolveActiveMember(ctx, *in.AssigneeID, msgAssigneeNotFound)
		if err != nil {
			return nil, err
		}
		assigneeID = in.AssigneeID
		assigneeName = &member.Name
	}

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task := models.Task{
		ID:             s.newID(),
		Title:          title,
		Description:    description,
		Status:         in.Status,
		Priority:       in.Priority,
		AssigneeID:     assigneeID,
		AssigneeName:   assigneeName,
		GearID:         gearID,
		BlockingReason: reason,
		SubTasks:       []models.SubTask{},
		DailyUpdates:   []models.DailyUpdate{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	tasks = append(tasks, task)
	if err := s.store.WriteTasks(ctx, tasks); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]any{"task": task.ID, "status": task.Status}).Info("task created")
	return &task, nil
}

// UpdateTask merges a partial update onto an existing task, re-running the
// blocked/blocking-reason coupling and re-resolving the assignee name when
// the assignee key is present.
func (s *Service) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validate.NotNull(in.Title.Set, in.Title.Valid, "title"); err != nil {
		return nil, err
	}
	if err := validate.NotNull(in.Status.Set, in.Status.Valid, "status"); err != nil {
		return nil, err
	}
	if err := validate.NotNull(in.Priority.Set, in.Priority.Valid, "priority"); err != nil {
		return nil, err
	}

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return nil, err
	}
	idx := taskIndex(tasks, id)
	if idx < 0 {
		return nil, apperr.NotFound(msgTaskNotFound)
	}
	task := tasks[idx]

	if in.Title.Set {
		if task.Title, err = validate.RequiredText(in.Title.Value, validate.MaxTitleLen, "title"); err != nil {
			return nil, err
		}
	}
	if in.Description.Set {
		if task.Description, err = validate.OptionalText(in.Description.Value, validate.MaxDescriptionLen, "description"); err != nil {
			return nil, err
		}
	}
	if in.Status.Set {
		if err := validate.Status(in.Status.Value); err != nil {
			return nil, err
		}
		task.Status = in.Status.Value
	}
	if in.Priority.Set {
		if err := validate.Priority(in.Priority.Value); err != nil {
			return nil, err
		}
		task.Priority = in.Priority.Value
	}
	if in.GearID.Set {
		if task.GearID, err = validate.GearID(in.GearID.Value); err != nil {
			return nil, err
		}
	}
	if in.BlockingReason.Set {
		task.BlockingReason = in.BlockingReason.Value
	}
	if task.BlockingReason, err = blockingReasonFor(task.Status, task.BlockingReason); err != nil {
		return nil, err
	}

	if in.AssigneeID.Set {
		if !in.AssigneeID.Valid {
			task.AssigneeID = nil
			task.AssigneeName = nil
		} else {
			member, err := s.resolveActiveMember(ctx, in.AssigneeID.Value, msgAssigneeNotFound)
			if err != nil {
				return nil, err
			}
			assigneeID := in.AssigneeID.Value
			task.AssigneeID = &assigneeID
			task.AssigneeName = &member.Name
		}
	}

	task.UpdatedAt = s.now()
	tasks[idx] = task
	if err := s.store.WriteTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task along with its sub-tasks and daily updates.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return err
	}
	idx := taskIndex(tasks, id)
	if idx < 0 {
		return apperr.NotFound(msgTaskNotFound)
	}
	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := s.store.WriteTasks(ctx, tasks); err != nil {
		return err
	}

	s.logger.WithField("task", id).Info("task deleted")
	return nil
}

// blockingReasonFor enforces the Blocked <-> non-empty reason coupling: a
// blocked task requires a trimmed, bounded reason, every other status forces
// the reason to empty.
func blockingReasonFor(status models.Status, reason string) (string, error) {
	if status != models.StatusBlocked {
		return "", nil
	}
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", apperr.Validation(msgBlockingRequired)
	}
	if utf8.RuneCountInString(trimmed) > validate.MaxBlockingReasonLen {
		return "", apperr.Validation("blocking reason must be at most %d characters", validate.MaxBlockingReasonLen)
	}
	return trimmed, nil
}

// resolveActiveMember maps an assignee/author id to an existing active
// member, failing with a reference error carrying notFoundMsg otherwise.
func (s *Service) resolveActiveMember(ctx context.Context, id, notFoundMsg string) (*models.TeamMember, error) {
	members, err := s.store.ReadMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == id && members[i].Active {
			return &members[i], nil
		}
	}
	return nil, apperr.Reference(notFoundMsg)
}

func taskIndex(tasks []models.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
