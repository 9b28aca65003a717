// Package query filters, searches and sorts the task collection. The same
// function backs the default list operation and any re-filter a consumer
// performs, so both call sites produce identical orderings.
package query

import (
	"sort"
	"strings"

	"taskflow/internal/models"
)

// Sort selects the ordering applied after filtering.
type Sort string

const (
	SortUpdated  Sort = "updated"
	SortPriority Sort = "priority"
	SortStatus   Sort = "status"
)

// Valid reports whether s names a supported sort key.
func (s Sort) Valid() bool {
	switch s {
	case SortUpdated, SortPriority, SortStatus:
		return true
	}
	return false
}

// FilterAll is the filter value meaning "no filtering on this dimension".
const FilterAll = "all"

// FilterUnassigned selects tasks without an assignee.
const FilterUnassigned = "unassigned"

// Filters narrows and orders a task list. Zero values mean "no filter" and
// the default updated-descending sort.
type Filters struct {
	Status   string
	Priority string
	Assignee string
	Search   string
	Sort     Sort
}

// FilterAndSort applies f to tasks and returns a new slice; the input is not
// modified. Ties under the priority and status sorts break by descending
// UpdatedAt, and equal keys keep their relative input order, so identical
// inputs always yield identical orderings.
func FilterAndSort(tasks []models.Task, f Filters) []models.Task {
	list := make([]models.Task, 0, len(tasks))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, t := range tasks {
		if !dimensionMatches(f.Status, string(t.Status)) {
			continue
		}
		if !dimensionMatches(f.Priority, string(t.Priority)) {
			continue
		}
		if !assigneeMatches(f.Assignee, t.AssigneeID) {
			continue
		}
		if search != "" && !searchMatches(t, search) {
			continue
		}
		list = append(list, t)
	}

	switch f.Sort {
	case SortPriority:
		sort.SliceStable(list, func(i, j int) bool {
			a, b := models.PriorityRank[list[i].Priority], models.PriorityRank[list[j].Priority]
			if a != b {
				return a < b
			}
			return list[i].UpdatedAt.After(list[j].UpdatedAt)
		})
	case SortStatus:
		sort.SliceStable(list, func(i, j int) bool {
			a, b := models.StatusRank[list[i].Status], models.StatusRank[list[j].Status]
			if a != b {
				return a < b
			}
			return list[i].UpdatedAt.After(list[j].UpdatedAt)
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].UpdatedAt.After(list[j].UpdatedAt)
		})
	}

	return list
}

func dimensionMatches(filter, value string) bool {
	if filter == "" || filter == FilterAll {
		return true
	}
	return filter == value
}

func assigneeMatches(filter string, assigneeID *string) bool {
	switch filter {
	case "", FilterAll:
		return true
	case FilterUnassigned:
		return assigneeID == nil
	default:
		return assigneeID != nil && *assigneeID == filter
	}
}

func searchMatches(t models.Task, q string) bool {
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.GearID), q)
}
