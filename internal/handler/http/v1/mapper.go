package v1

import (
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/service"
)

func locationOf(lat, lng *float64, address string) *LocationDTO {
	if lat == nil && lng == nil && address == "" {
		return nil
	}
	return &LocationDTO{Lat: lat, Lng: lng, Address: address}
}

// CreateDTOToInput converts the create payload to the service input.
func CreateDTOToInput(dto CreateHelpRequestRequest) service.CreateHelpRequestInput {
	in := service.CreateHelpRequestInput{
		Title:         dto.Title,
		Description:   dto.Description,
		Category:      dto.Category,
		Priority:      dto.Priority,
		EstimatedTime: dto.EstimatedTime,
	}
	if dto.Location != nil {
		in.Latitude = dto.Location.Lat
		in.Longitude = dto.Location.Lng
		in.Address = dto.Location.Address
	}
	return in
}

// UpdateDTOToInput converts the update payload to the service input.
func UpdateDTOToInput(dto UpdateHelpRequestRequest) service.UpdateHelpRequestInput {
	in := service.UpdateHelpRequestInput{
		Description: dto.Description,
		Category:    dto.Category,
		Priority:    dto.Priority,
	}
	if dto.Location != nil {
		in.Latitude = dto.Location.Lat
		in.Longitude = dto.Location.Lng
		in.Address = dto.Location.Address
	}
	return in
}

// ProfileDTOToInput converts the profile payload to the service input.
func ProfileDTOToInput(dto UpdateProfileRequest) service.UpdateProfileInput {
	in := service.UpdateProfileInput{
		Name:     dto.Name,
		Phone:    dto.Phone,
		IsHelper: dto.IsHelper,
	}
	if dto.Location != nil {
		in.Latitude = dto.Location.Lat
		in.Longitude = dto.Location.Lng
		in.Address = dto.Location.Address
	}
	return in
}

// ModelToHelpRequestResponse converts a domain model to its wire form.
func ModelToHelpRequestResponse(model *models.HelpRequest) *HelpRequestResponse {
	return &HelpRequestResponse{
		ID:            model.ID,
		RequesterID:   model.RequesterID,
		HelperID:      model.HelperID,
		Title:         model.Title,
		Description:   model.Description,
		Category:      string(model.Category),
		Priority:      string(model.Priority),
		Status:        string(model.Status),
		Location:      locationOf(model.Latitude, model.Longitude, model.Address),
		AcceptedAt:    model.AcceptedAt,
		CompletedAt:   model.CompletedAt,
		Rating:        model.Rating,
		Feedback:      model.Feedback,
		EstimatedTime: model.EstimatedTime,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// ModelsToHelpRequestResponses converts a slice of models to wire forms.
func ModelsToHelpRequestResponses(requests []*models.HelpRequest) []*HelpRequestResponse {
	responses := make([]*HelpRequestResponse, len(requests))
	for i, model := range requests {
		responses[i] = ModelToHelpRequestResponse(model)
	}
	return responses
}

// ModelToUserResponse converts a user model to its wire form.
func ModelToUserResponse(model *models.User) *UserResponse {
	return &UserResponse{
		ID:         model.ID,
		Name:       model.Name,
		Email:      model.Email,
		Phone:      model.Phone,
		Role:       string(model.Role),
		Rating:     model.Rating,
		TotalHelps: model.TotalHelps,
		IsHelper:   model.IsHelper,
		Location:   locationOf(model.Latitude, model.Longitude, model.Address),
		CreatedAt:  model.CreatedAt,
	}
}

// ModelsToUserResponses converts a slice of user models to wire forms.
func ModelsToUserResponses(users []*models.User) []*UserResponse {
	responses := make([]*UserResponse, len(users))
	for i, model := range users {
		responses[i] = ModelToUserResponse(model)
	}
	return responses
}

// ModelToNotificationResponse converts a notification model to its wire form.
func ModelToNotificationResponse(model *models.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:             model.ID,
		Title:          model.Title,
		Message:        model.Message,
		Type:           string(model.Type),
		RelatedRequest: model.RelatedRequest,
		IsRead:         model.IsRead,
		CreatedAt:      model.CreatedAt,
	}
}

// ModelsToNotificationResponses converts a slice of notification models.
func ModelsToNotificationResponses(notifications []*models.Notification) []*NotificationResponse {
	responses := make([]*NotificationResponse, len(notifications))
	for i, model := range notifications {
		responses[i] = ModelToNotificationResponse(model)
	}
	return responses
}
