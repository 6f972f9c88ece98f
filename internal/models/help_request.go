package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status of a help request. Initial status is pending; completed and
// cancelled are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Priority of a help request.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Category is the canonical, lower-case category a request is stored as.
type Category string

const (
	CategoryMedical    Category = "medical"
	CategoryEmergency  Category = "emergency"
	CategoryTransport  Category = "transport"
	CategoryFood       Category = "food"
	CategoryShelter    Category = "shelter"
	CategoryAssistance Category = "assistance"
	CategoryGroceries  Category = "groceries"
	CategoryHousehold  Category = "household"
	CategoryGeneral    Category = "general"
	CategoryOther      Category = "other"
)

var validCategories = map[Category]struct{}{
	CategoryMedical:    {},
	CategoryEmergency:  {},
	CategoryTransport:  {},
	CategoryFood:       {},
	CategoryShelter:    {},
	CategoryAssistance: {},
	CategoryGroceries:  {},
	CategoryHousehold:  {},
	CategoryGeneral:    {},
	CategoryOther:      {},
}

// NormalizeCategory maps any casing of a known category to its canonical
// lower-case value. An empty input defaults to "general".
func NormalizeCategory(raw string) (Category, error) {
	if strings.TrimSpace(raw) == "" {
		return CategoryGeneral, nil
	}
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := validCategories[c]; !ok {
		return "", NewValidationError("unknown category: " + raw)
	}
	return c, nil
}

var validPriorities = map[Priority]struct{}{
	PriorityLow:      {},
	PriorityMedium:   {},
	PriorityHigh:     {},
	PriorityCritical: {},
}

// NormalizePriority validates a priority value, defaulting to medium
// when empty.
func NormalizePriority(raw string) (Priority, error) {
	if strings.TrimSpace(raw) == "" {
		return PriorityMedium, nil
	}
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := validPriorities[p]; !ok {
		return "", NewValidationError("unknown priority: " + raw)
	}
	return p, nil
}

var validStatuses = map[Status]struct{}{
	StatusPending:    {},
	StatusAccepted:   {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseStatus validates a status value, defaulting to pending when empty.
func ParseStatus(raw string) (Status, error) {
	if strings.TrimSpace(raw) == "" {
		return StatusPending, nil
	}
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := validStatuses[s]; !ok {
		return "", NewValidationError("unknown status: " + raw)
	}
	return s, nil
}

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	DerivedTitleLen   = 50

	DefaultEstimatedTime = 30 // minutes
)

// HelpRequest is the central entity of the system.
//
// HelperID is set exactly once when the request is accepted and is never
// cleared. Latitude/Longitude are nil when the location is unknown; such
// requests are excluded from proximity queries. Rating is set exactly once,
// by the requester, after completion.
type HelpRequest struct {
	ID            uuid.UUID  `json:"id"`
	RequesterID   uuid.UUID  `json:"requester_id"`
	HelperID      *uuid.UUID `json:"helper_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      Category   `json:"category"`
	Priority      Priority   `json:"priority"`
	Status        Status     `json:"status"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	Address       string     `json:"address"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	Feedback      string     `json:"feedback,omitempty"`
	EstimatedTime int        `json:"estimated_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasLocation reports whether the request carries known coordinates.
func (r *HelpRequest) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// RequestFilter narrows listing queries. Zero values mean "no filter".
type RequestFilter struct {
	Status   Status
	Category Category
	Priority Priority
}
