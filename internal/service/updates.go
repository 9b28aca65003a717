package service

import (
	"context"

	"taskflow/internal/apperr"
	"taskflow/internal/models"
	"taskflow/internal/validate"
)

const (
	msgUpdateNotFound   = "Update not found"
	msgEditWindowOver   = "Updates can only be edited within 24 hours."
	msgDeleteWindowOver = "Updates can only be deleted within 24 hours."
)

// AddDailyUpdate prepends a journal entry authored by an active member,
// snapshotting the author's name at creation time.
func (s *Service) AddDailyUpdate(ctx context.Context, taskID, authorID, content string) (*models.DailyUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized, err := validate.UpdateContent(content)
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

	author, err := s.resolveActiveMember(ctx, authorID, msgAuthorNotFound)
	if err != nil {
		return nil, err
	}

	now := s.now()
	update := models.DailyUpdate{
		ID:         s.newID(),
		TaskID:     taskID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Content:    normalized,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	task := &tasks[idx]
	// Newest first; list order is storage order.
	task.DailyUpdates = append([]models.DailyUpdate{update}, task.DailyUpdates...)
	task.UpdatedAt = now
	if err := s.store.WriteTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return &update, nil
}

// EditDailyUpdate rewrites an update's content while the 24-hour window is
// still open, marking it edited. Not-found and window checks run against the
// stored entry before the payload is validated.
func (s *Service) EditDailyUpdate(ctx context.Context, taskID, updateID, content string) error {
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
	update := dailyUpdateByID(task, updateID)
	if update == nil {
		return apperr.NotFound(msgUpdateNotFound)
	}

	now := s.now()
	if !validate.WithinEditWindow(update.CreatedAt, now) {
		return apperr.Conflict(msgEditWindowOver)
	}

	normalized, err := validate.UpdateContent(content)
	if err != nil {
		return err
	}

	update.Content = normalized
	update.Edited = true
	update.UpdatedAt = now
	task.UpdatedAt = now
	return s.store.WriteTasks(ctx, tasks)
}

// DeleteDailyUpdate removes an update while the 24-hour window is open.
func (s *Service) DeleteDailyUpdate(ctx context.Context, taskID, updateID string) error {
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
	update := dailyUpdateByID(task, updateID)
	if update == nil {
		return apperr.NotFound(msgUpdateNotFound)
	}

	now := s.now()
	if !validate.WithinEditWindow(update.CreatedAt, now) {
		return apperr.Conflict(msgDeleteWindowOver)
	}

	remaining := make([]models.DailyUpdate, 0, len(task.DailyUpdates)-1)
	for _, u := range task.DailyUpdates {
		if u.ID != updateID {
			remaining = append(remaining, u)
		}
	}
	task.DailyUpdates = remaining
	task.UpdatedAt = now
	return s.store.WriteTasks(ctx, tasks)
}

func dailyUpdateByID(task *models.Task, id string) *models.DailyUpdate {
	for i := range task.DailyUpdates {
		if task.DailyUpdates[i].ID == id {
			return &task.DailyUpdates[i]
		}
	}
	return nil
}
