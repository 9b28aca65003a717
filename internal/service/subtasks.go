package service

import (
	"context"

	"taskflow/internal/apperr"
	"taskflow/internal/models"
	"taskflow/internal/validate"
)

const (
	msgSubTaskNotFound = "Sub-task not found"
	msgSubTaskLimit    = "Maximum of 20 sub-tasks per task"
)

// MaxSubTasksPerTask is the ceiling on sub-tasks held by a single task.
const MaxSubTasksPerTask = 20

// AddSubTask appends a sub-task at the next position and bumps the parent's
// updated timestamp. The 21st add is rejected.
func (s *Service) AddSubTask(ctx context.Context, taskID, title string) (*models.SubTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized, err := validate.RequiredText(title, validate.MaxTitleLen, "title")
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return nil, err
	}
	idx := taskIndex(tasks, taskID)
	if idx < 0 {
		return nil, apperr.NotFound(msgTaskNotFound)
	}
	task := &tasks[idx]
	if len(task.SubTasks) >= MaxSubTasksPerTask {
		return nil, apperr.Conflict(msgSubTaskLimit)
	}

	sub := models.SubTask{
		ID:        s.newID(),
		Title:     normalized,
		Position:  len(task.SubTasks),
		CreatedAt: s.now(),
	}
	task.SubTasks = append(task.SubTasks, sub)
	task.UpdatedAt = s.now()
	if err := s.store.WriteTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ToggleSubTask flips the completion flag. Each call flips the current
// state; there is no way to set a specific value.
func (s *Service) ToggleSubTask(ctx context.Context, taskID, subTaskID string) (*models.SubTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return nil, err
	}
	idx := taskIndex(tasks, taskID)
	if idx < 0 {
		return nil, apperr.NotFound(msgTaskNotFound)
	}
	task := &tasks[idx]
	sub := subTaskByID(task, subTaskID)
	if sub == nil {
		return nil, apperr.NotFound(msgSubTaskNotFound)
	}

	sub.Completed = !sub.Completed
	task.UpdatedAt = s.now()
	if err := s.store.WriteTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return sub, nil
}

// EditSubTask replaces a sub-task's title.
func (s *Service) EditSubTask(ctx context.Context, taskID, subTaskID, title string) (*models.SubTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized, err := validate.RequiredText(title, validate.MaxTitleLen, "title")
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return nil, err
	}
	idx := taskIndex(tasks, taskID)
	if idx < 0 {
		return nil, apperr.NotFound(msgTaskNotFound)
	}
	task := &tasks[idx]
	sub := subTaskByID(task, subTaskID)
	if sub == nil {
		return nil, apperr.NotFound(msgSubTaskNotFound)
	}

	sub.Title = normalized
	task.UpdatedAt = s.now()
	if err := s.store.WriteTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubTask removes a sub-task and re-densifies the remaining positions
// to 0..n-1 in their prior relative order.
func (s *Service) DeleteSubTask(ctx context.Context, taskID, subTaskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return err
	}
	idx := taskIndex(tasks, taskID)
	if idx < 0 {
		return apperr.NotFound(msgTaskNotFound)
	}
	task := &tasks[idx]

	remaining := make([]models.SubTask, 0, len(task.SubTasks))
	found := false
	for _, sub := range task.SubTasks {
		if sub.ID == subTaskID {
			found = true
			continue
		}
		sub.Position = len(remaining)
		remaining = append(remaining, sub)
	}
	if !found {
		return apperr.NotFound(msgSubTaskNotFound)
	}

	task.SubTasks = remaining
	task.UpdatedAt = s.now()
	return s.store.WriteTasks(ctx, tasks)
}

// ReorderSubTasks applies a full ordering: orderedIDs must name each
// existing sub-task exactly once, and positions become the index in the
// given order.
func (s *Service) ReorderSubTasks(ctx context.Context, taskID string, orderedIDs []string) ([]models.SubTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, dup := seen[id]; dup {
			return nil, apperr.Validation("sub-task ids must not contain duplicates")
		}
		seen[id] = struct{}{}
	}

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return nil, err
	}
	idx := taskIndex(tasks, taskID)
	if idx < 0 {
		return nil, apperr.NotFound(msgTaskNotFound)
	}
	task := &tasks[idx]

	if len(orderedIDs) != len(task.SubTasks) {
		return nil, apperr.Validation("sub-task ids must include each existing sub-task exactly once")
	}
	byID := make(map[string]models.SubTask, len(task.SubTasks))
	for _, sub := range task.SubTasks {
		byID[sub.ID] = sub
	}

	reordered := make([]models.SubTask, 0, len(orderedIDs))
	for position, id := range orderedIDs {
		sub, ok := byID[id]
		if !ok {
			return nil, apperr.Validation("sub-task ids must include each existing sub-task exactly once")
		}
		sub.Position = position
		reordered = append(reordered, sub)
	}

	task.SubTasks = reordered
	task.UpdatedAt = s.now()
	if err := s.store.WriteTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return reordered, nil
}

func subTaskByID(task *models.Task, id string) *models.SubTask {
	for i := range task.SubTasks {
		if task.SubTasks[i].ID == id {
			return &task.SubTasks[i]
		}
	}
	return nil
}
