package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"roombooking/internal/middleware"
	"roombooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the read-only routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.GET("/rooms/:id/conflicts", h.CheckConflicts)
}

// RegisterProtectedRoutes registers the mutating routes; rg must carry JWTAuth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.PATCH("/bookings/:id", h.UpdateBooking)
	rg.DELETE("/bookings/:id", h.DeleteBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64(middleware.ContextUserID)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	req.UserID = userID

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booking": b,
		"message": "created",
	})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking": b,
		"message": "updated",
	})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// CheckConflicts handles GET /rooms/:id/conflicts?start=RFC3339&end=RFC3339[&exclude=ID]
func (h *Handler) CheckConflicts(c *gin.Context) {
	roomID, ok := parseID(c)
	if !ok {
		return
	}

	fields := map[string]string{}
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		fields["start"] = "must be an RFC3339 timestamp"
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		fields["end"] = "must be an RFC3339 timestamp"
	}

	var excludeID *int64
	if raw := c.Query("exclude"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			fields["exclude"] = "must be a booking id"
		} else {
			excludeID = &v
		}
	}

	if len(fields) > 0 {
		writeError(c, &ValidationError{Fields: fields})
		return
	}

	report, err := h.service.CheckConflicts(c.Request.Context(), roomID, start, end, excludeID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	var (
		vErr  *ValidationError
		cErr  *ConflictError
		nfErr *NotFoundError
	)
	switch {
	case errors.As(err, &vErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request", vErr.Fields)
	case errors.As(err, &cErr):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT", "Room is not available for the selected time", gin.H{
			"conflicts": cErr.Conflicts,
		})
	case errors.As(err, &nfErr):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", nfErr.Error())
	case errors.Is(err, ErrDependencyUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
