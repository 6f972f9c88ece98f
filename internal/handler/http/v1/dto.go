package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationDTO is the single wire representation of a location. Lat/Lng are
// optional as a pair; an address may stand alone when coordinates are
// unknown.
// @Description Geographic location with optional coordinates
type LocationDTO struct {
	Lat     *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng     *float64 `json:"lng" validate:"omitempty,longitude"`
	Address string   `json:"address"`
}

// CreateHelpRequestRequest is the payload for posting a help request.
// @Description Payload for creating a help request
type CreateHelpRequestRequest struct {
	Title         string       `json:"title" validate:"omitempty,max=100"`
	Description   string       `json:"description" validate:"required,max=500"`
	Category      string       `json:"category"`
	Priority      string       `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Location      *LocationDTO `json:"location"`
	EstimatedTime int          `json:"estimated_time" validate:"omitempty,gt=0"`
}

// UpdateHelpRequestRequest is the payload for editing a pending request.
// @Description Payload for updating a pending help request
type UpdateHelpRequestRequest struct {
	Description string       `json:"description" validate:"required,max=500"`
	Category    string       `json:"category"`
	Priority    string       `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Location    *LocationDTO `json:"location"`
}

// RateHelpRequestRequest is the payload for rating a completed request.
// @Description Payload for rating a completed help request
type RateHelpRequestRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// HelpRequestResponse is the wire form of a help request.
// @Description Help request details
type HelpRequestResponse struct {
	ID            uuid.UUID    `json:"id"`
	RequesterID   uuid.UUID    `json:"requester_id"`
	HelperID      *uuid.UUID   `json:"helper_id,omitempty"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Priority      string       `json:"priority"`
	Status        string       `json:"status"`
	Location      *LocationDTO `json:"location,omitempty"`
	AcceptedAt    *time.Time   `json:"accepted_at,omitempty"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	Rating        *int         `json:"rating,omitempty"`
	Feedback      string       `json:"feedback,omitempty"`
	EstimatedTime int          `json:"estimated_time"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// UpdateProfileRequest is the payload for editing a user profile.
// @Description Payload for updating a user profile
type UpdateProfileRequest struct {
	Name     string       `json:"name" validate:"required,min=2,max=100"`
	Phone    string       `json:"phone"`
	IsHelper bool         `json:"is_helper"`
	Location *LocationDTO `json:"location"`
}

// UserResponse is the wire form of a user profile.
// @Description User profile details
type UserResponse struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone,omitempty"`
	Role       string       `json:"role"`
	Rating     float64      `json:"rating"`
	TotalHelps int          `json:"total_helps"`
	IsHelper   bool         `json:"is_helper"`
	Location   *LocationDTO `json:"location,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// NotificationResponse is the wire form of a notification.
// @Description Notification details
type NotificationResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	RelatedRequest *uuid.UUID `json:"related_request,omitempty"`
	IsRead         bool       `json:"is_read"`
	CreatedAt      time.Time  `json:"created_at"`
}
