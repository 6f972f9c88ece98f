package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/config"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/geo"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/service"
)

type Handler struct {
	requests      service.HelpRequestService
	users         service.UserService
	notifications service.NotificationService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(requests service.HelpRequestService, users service.UserService, notifications service.NotificationService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		requests:      requests,
		users:         users,
		notifications: notifications,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	var domainErr *models.DomainError
	if !errors.As(err, &domainErr) {
		log.WithError(err).Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Kind {
	case models.KindValidation:
		status = http.StatusBadRequest
	case models.KindAuthorization:
		status = http.StatusForbidden
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindConflict:
		status = http.StatusConflict
	case models.KindDependency:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Dependency failure")
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.JSON(status, gin.H{"error": domainErr.Message})
}

func parseRequestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Create a help request
// @Description Post a new help request with an optional location. Requires a bearer token.
// @Tags HelpRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateHelpRequestRequest true "Help request creation payload"
// @Success 201 {object} HelpRequestResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /help-requests [post]
func (h *Handler) createHelpRequest(c *gin.Context) {
	log := h.logger.WithField("method", "createHelpRequest")

	var input CreateHelpRequestRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.requests.Create(c.Request.Context(), actorFrom(c), CreateDTOToInput(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToHelpRequestResponse(req))
}

// @Summary List help requests
// @Description List help requests, optionally filtered by status, category and priority.
// @Tags HelpRequests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param priority query string false "Priority filter"
// @Success 200 {array} HelpRequestResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /help-requests [get]
func (h *Handler) listHelpRequests(c *gin.Context) {
	log := h.logger.WithField("method", "listHelpRequests")

	filter := models.RequestFilter{
		Status:   models.Status(c.Query("status")),
		Category: models.Category(c.Query("category")),
		Priority: models.Priority(c.Query("priority")),
	}

	requests, err := h.requests.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToHelpRequestResponses(requests))
}

// @Summary Find nearby help requests
// @Description Return help requests within a radius (km) of a point, most recent first.
// @Tags HelpRequests
// @Produce json
// @Security BearerAuth
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param radius query number false "Radius in kilometers" default(10)
// @Param status query string false "Status filter" default(pending)
// @Success 200 {array} HelpRequestResponse
// @Failure 400 {object} map[string]string "Out-of-range coordinates or radius"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /help-requests/nearby [get]
func (h *Handler) nearbyHelpRequests(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyHelpRequests")

	point, radius, ok := h.parseNearbyQuery(c)
	if !ok {
		return
	}

	requests, err := h.requests.FindNearby(c.Request.Context(), point, radius, c.Query("status"))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToHelpRequestResponses(requests))
}

func (h *Handler) parseNearbyQuery(c *gin.Context) (geo.Point, float64, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide latitude and longitude"})
		return geo.Point{}, 0, false
	}

	radius := 0.0
	if raw := c.Query("radius"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
			return geo.Point{}, 0, false
		}
		radius = r
	}
	return geo.Point{Latitude: lat, Longitude: lng}, radius, true
}

// @Summary Get a help request
// @Tags HelpRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Success 200 {object} HelpRequestResponse
// @Failure 404 {object} map[string]string "Help request not found"
// @Router /help-requests/{id} [get]
func (h *Handler) getHelpRequest(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getHelpRequest").WithField("id", id)

	req, err := h.requests.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHelpRequestResponse(req))
}

// @Summary Update a pending help request
// @Description Edit the content fields of a pending request. Requester or admin only.
// @Tags HelpRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Param request body UpdateHelpRequestRequest true "Update payload"
// @Success 200 {object} HelpRequestResponse
// @Failure 403 {object} map[string]string "Not the requester"
// @Failure 409 {object} map[string]string "Request is no longer pending"
// @Router /help-requests/{id} [put]
func (h *Handler) updateHelpRequest(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateHelpRequest").WithField("id", id)

	var input UpdateHelpRequestRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.requests.Update(c.Request.Context(), actorFrom(c), id, UpdateDTOToInput(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHelpRequestResponse(req))
}

// @Summary Accept a help request
// @Description Bind the acting helper to a pending request. Exactly one helper ever wins.
// @Tags HelpRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Success 200 {object} HelpRequestResponse
// @Failure 404 {object} map[string]string "Help request not found"
// @Failure 409 {object} map[string]string "Already accepted"
// @Router /help-requests/{id}/accept [put]
func (h *Handler) acceptHelpRequest(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "acceptHelpRequest").WithField("id", id)

	req, err := h.requests.Accept(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHelpRequestResponse(req))
}

// @Summary Start a help request
// @Description Mark an accepted request as in-progress. Assigned helper only.
// @Tags HelpRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Success 200 {object} HelpRequestResponse
// @Failure 403 {object} map[string]string "Not the assigned helper"
// @Failure 409 {object} map[string]string "Request is not accepted"
// @Router /help-requests/{id}/start [put]
func (h *Handler) startHelpRequest(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "startHelpRequest").WithField("id", id)

	req, err := h.requests.Start(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHelpRequestResponse(req))
}

// @Summary Complete a help request
// @Description Mark an accepted or in-progress request as completed. Assigned helper only.
// @Tags HelpRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Success 200 {object} HelpRequestResponse
// @Failure 403 {object} map[string]string "Not the assigned helper"
// @Failure 409 {object} map[string]string "Request is not active"
// @Router /help-requests/{id}/complete [put]
func (h *Handler) completeHelpRequest(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "completeHelpRequest").WithField("id", id)

	req, err := h.requests.Complete(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHelpRequestResponse(req))
}

// @Summary Rate a completed help request
// @Description Store a 1-5 rating and feedback, exactly once. Requester only.
// @Tags HelpRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Param request body RateHelpRequestRequest true "Rating payload"
// @Success 200 {object} HelpRequestResponse
// @Failure 400 {object} map[string]string "Rating out of range"
// @Failure 403 {object} map[string]string "Not the requester"
// @Failure 409 {object} map[string]string "Not completed or already rated"
// @Router /help-requests/{id}/rate [put]
func (h *Handler) rateHelpRequest(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "rateHelpRequest").WithField("id", id)

	var input RateHelpRequestRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.requests.Rate(c.Request.Context(), actorFrom(c), id, input.Rating, input.Feedback)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHelpRequestResponse(req))
}

// @Summary Cancel a help request
// @Description Cancel a pending or accepted request. Requester or admin only.
// @Tags HelpRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Success 200 {object} HelpRequestResponse
// @Failure 403 {object} map[string]string "Not the requester"
// @Failure 409 {object} map[string]string "Request can no longer be cancelled"
// @Router /help-requests/{id}/cancel [put]
func (h *Handler) cancelHelpRequest(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "cancelHelpRequest").WithField("id", id)

	req, err := h.requests.Cancel(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHelpRequestResponse(req))
}

// @Summary Delete a help request
// @Description Remove a help request permanently. Requester or admin only.
// @Tags HelpRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Help request ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the requester"
// @Failure 404 {object} map[string]string "Help request not found"
// @Router /help-requests/{id} [delete]
func (h *Handler) deleteHelpRequest(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteHelpRequest").WithField("id", id)

	if err := h.requests.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get application health status
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
