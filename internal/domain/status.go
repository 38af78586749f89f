package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusBaking     Status = "baking"
	StatusDecorating Status = "decorating"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrUnknownStatus   = errors.New("unknown order status")
	ErrTerminalStatus  = errors.New("order is in a terminal status")
	ErrUnknownPriority = errors.New("unknown order priority")
)

// StatusMeta is the canonical presentation metadata for a status. Every
// caller that needs a label, badge color or display ordering reads it from
// here instead of keeping its own table.
type StatusMeta struct {
	Label     string
	Color     string
	SortOrder int
	Terminal  bool
}

var statusMeta = map[Status]StatusMeta{
	StatusPending:    {Label: "Pending", Color: "#F59E0B", SortOrder: 0},
	StatusBaking:     {Label: "Baking", Color: "#F97316", SortOrder: 1},
	StatusDecorating: {Label: "Decorating", Color: "#8B5CF6", SortOrder: 2},
	StatusReady:      {Label: "Ready", Color: "#10B981", SortOrder: 3},
	StatusCompleted:  {Label: "Completed", Color: "#3B82F6", SortOrder: 4, Terminal: true},
	StatusCancelled:  {Label: "Cancelled", Color: "#6B7280", SortOrder: 5, Terminal: true},
}

// Meta returns the metadata for s. Unknown statuses get the cancelled-grey
// fallback so display code never has to branch.
func (s Status) Meta() StatusMeta {
	if m, ok := statusMeta[s]; ok {
		return m
	}
	return StatusMeta{Label: string(s), Color: "#6B7280", SortOrder: -1}
}

func (s Status) Valid() bool {
	_, ok := statusMeta[s]
	return ok
}

func (s Status) Terminal() bool {
	return s.Meta().Terminal
}

// Stage is the position of s on the public tracking timeline. Cancelled
// orders report -1; the tracking page renders them outside the progress bar.
func (s Status) Stage() int {
	if s == StatusCancelled {
		return -1
	}
	return s.Meta().SortOrder
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityRush   Priority = "rush"
)

type PriorityMeta struct {
	Label     string
	Color     string
	SortOrder int
}

var priorityMeta = map[Priority]PriorityMeta{
	PriorityLow:    {Label: "Low", Color: "#9CA3AF", SortOrder: 0},
	PriorityMedium: {Label: "Medium", Color: "#F59E0B", SortOrder: 1},
	PriorityHigh:   {Label: "High", Color: "#EF4444", SortOrder: 2},
	PriorityRush:   {Label: "Rush", Color: "#DC2626", SortOrder: 3},
}

func (p Priority) Meta() PriorityMeta {
	if m, ok := priorityMeta[p]; ok {
		return m
	}
	return PriorityMeta{Label: string(p), Color: "#9CA3AF", SortOrder: -1}
}

func (p Priority) Valid() bool {
	_, ok := priorityMeta[p]
	return ok
}

// StatusLog is one entry of an order's status history.
type StatusLog struct {
	ID        int
	OrderID   int
	Status    Status
	ChangedBy string
	ChangedAt time.Time
	Notes     *string
}
