package service

import (
	"context"
	"sort"

	"taskflow/internal/apperr"
	"taskflow/internal/models"
	"taskflow/internal/validate"
)

const (
	msgMemberNotFound = "Member not found"
	msgDuplicateEmail = "A member with this email already exists"
)

// CreateMemberInput carries the fields accepted when creating a member.
// Active defaults to true when omitted.
type CreateMemberInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active *bool  `json:"active"`
}

// UpdateMemberInput is a partial member update; none of the fields accept an
// explicit null.
type UpdateMemberInput struct {
	Name   models.Optional[string] `json:"name"`
	Email  models.Optional[string] `json:"email"`
	Active models.Optional[bool]   `json:"active"`
}

// ListMembers returns all members ordered by display name.
func (s *Service) ListMembers(ctx context.Context) ([]models.TeamMember, error) {
	members, err := s.store.ReadMembers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

// GetMember returns a single member by id.
func (s *Service) GetMember(ctx context.Context, id string) (*models.TeamMember, error) {
	members, err := s.store.ReadMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == id {
			return &members[i], nil
		}
	}
	return nil, apperr.NotFound(msgMemberNotFound)
}

// CreateMember adds a member, enforcing e-mail uniqueness as stored.
func (s *Service) CreateMember(ctx context.Context, in CreateMemberInput) (*models.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := validate.RequiredText(in.Name, validate.MaxMemberNameLen, "name")
	if err != nil {
		return nil, err
	}
	email, err := validate.Email(in.Email)
	if err != nil {
		return nil, err
	}

	members, err := s.store.ReadMembers(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.Email == email {
			return nil, apperr.Conflict(msgDuplicateEmail)
		}
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	member := models.TeamMember{
		ID:     s.newID(),
		Name:   name,
		Email:  email,
		Active: active,
	}
	members = append(members, member)
	if err := s.store.WriteMembers(ctx, members); err != nil {
		return nil, err
	}

	s.logger.WithField("member", member.ID).Info("member created")
	return &member, nil
}

// UpdateMember merges a partial update, rejecting e-mail collisions with a
// different member.
func (s *Service) UpdateMember(ctx context.Context, id string, in UpdateMemberInput) (*models.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validate.NotNull(in.Name.Set, in.Name.Valid, "name"); err != nil {
		return nil, err
	}
	if err := validate.NotNull(in.Email.Set, in.Email.Valid, "email"); err != nil {
		return nil, err
	}
	if err := validate.NotNull(in.Active.Set, in.Active.Valid, "active"); err != nil {
		return nil, err
	}

	members, err := s.store.ReadMembers(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range members {
		if members[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound(msgMemberNotFound)
	}
	member := members[idx]

	if in.Name.Set {
		if member.Name, err = validate.RequiredText(in.Name.Value, validate.MaxMemberNameLen, "name"); err != nil {
			return nil, err
		}
	}
	if in.Email.Set {
		email, err := validate.Email(in.Email.Value)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if m.Email == email && m.ID != id {
				return nil, apperr.Conflict(msgDuplicateEmail)
			}
		}
		member.Email = email
	}
	if in.Active.Set {
		member.Active = in.Active.Value
	}

	members[idx] = member
	if err := s.store.WriteMembers(ctx, members); err != nil {
		return nil, err
	}
	return &member, nil
}

// DeleteMember removes a member once nothing references it: no assigned
// tasks and no authored daily updates may remain.
func (s *Service) DeleteMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.store.ReadMembers(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range members {
		if members[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound(msgMemberNotFound)
	}

	tasks, err := s.store.ReadTasks(ctx)
	if err != nil {
		return err
	}
	assigned := 0
	authored := 0
	for _, t := range tasks {
		if t.AssigneeID != nil && *t.AssigneeID == id {
			assigned++
		}
		for _, u := range t.DailyUpdates {
			if u.AuthorID == id {
				authored++
			}
		}
	}
	if assigned > 0 {
		return apperr.Conflict("Cannot delete member with %d assigned task(s). Reassign or complete them first.", assigned)
	}
	if authored > 0 {
		return apperr.Conflict("Cannot delete member with %d authored daily update(s). Delete those updates first.", authored)
	}

	members = append(members[:idx], members[idx+1:]...)
	if err := s.store.WriteMembers(ctx, members); err != nil {
		return err
	}

	s.logger.WithField("member", id).Info("member deleted")
	return nil
}
