package models

import "time"

// Status enumerates the workflow states a task moves through.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusBlocked    Status = "Blocked"
	StatusDone       Status = "Done"
)

// Valid reports whether the status is one of the known workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Priority enumerates task urgency levels.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// PriorityRank orders priorities for sorting, most urgent first.
var PriorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// StatusRank orders statuses for sorting, following the board column order.
var StatusRank = map[Status]int{
	StatusToDo:       1,
	StatusInProgress: 2,
	StatusBlocked:    3,
	StatusDone:       4,
}

// SubTask is an ordered, checkable child item of a task.
type SubTask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// DailyUpdate is a timestamped journal entry on a task. AuthorName is a
// snapshot taken at creation time and is never re-resolved afterwards.
type DailyUpdate struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Edited     bool      `json:"edited"`
}

// Task is the central tracked work item. AssigneeName caches the referenced
// member's display name and is recomputed whenever AssigneeID changes.
type Task struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Status         Status        `json:"status"`
	Priority       Priority      `json:"priority"`
	AssigneeID     *string       `json:"assigneeId"`
	AssigneeName   *string       `json:"assigneeName"`
	GearID         string        `json:"gearId"`
	BlockingReason string        `json:"blockingReason"`
	SubTasks       []SubTask     `json:"subTasks"`
	DailyUpdates   []DailyUpdate `json:"dailyUpdates"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// TeamMember is a person eligible to be assigned tasks and author updates.
type TeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// ConnectionSettings holds the credentials for the networked database the
// local store can be swapped for. Persisted as a singleton record.
type ConnectionSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ConnectionTestResult reports the outcome of a reachability probe.
type ConnectionTestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
