package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"roombooking/internal/pkg/response"
	"roombooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.GetRooms)
	rg.GET("/rooms/:id", h.GetRoomByID)
}

// RegisterAdminRoutes expects rg to carry JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/rooms", h.CreateRoom)
	rg.PUT("/rooms/:id/maintenance", h.SetMaintenance)
}

// GetRooms handles GET /api/v1/rooms
func (h *Handler) GetRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoomByID handles GET /api/v1/rooms/:id
func (h *Handler) GetRoomByID(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// CreateRoom handles POST /api/v1/rooms (admin)
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, fields, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room", fields)
			return
		}
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

// SetMaintenance handles PUT /api/v1/rooms/:id/maintenance (admin)
func (h *Handler) SetMaintenance(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", fields)
		return
	}

	room, err := h.service.SetMaintenance(c.Request.Context(), roomID, *req.Enabled)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func parseRoomID(c *gin.Context) (int64, bool) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || roomID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return 0, false
	}
	return roomID, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrRoomCodeExists):
		response.Error(c, http.StatusConflict, "ROOM_CODE_EXISTS", "A room with this code already exists")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
