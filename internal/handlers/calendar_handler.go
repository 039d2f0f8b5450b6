package handlers

import (
	"net/http"
	"time"

	"marketing-service/internal/models"
	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CalendarHandler struct {
	calendarService *services.CalendarService
}

func NewCalendarHandler(calendarService *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

func (h *CalendarHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/calendar", h.MonthFeed)
	protected.POST("/calendar/events", h.CreateEvent)
	protected.DELETE("/calendar/events/:id", h.DeleteEvent)
}

// MonthFeed returns the merged calendar for the month given as ?month=2026-08
// (defaults to the current month).
func (h *CalendarHandler) MonthFeed(c *gin.Context) {
	month := time.Now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest,
				utils.CreateErrorResponse("INVALID_MONTH", "month must be formatted as YYYY-MM"))
			return
		}
		month = parsed
	}

	entries, err := h.calendarService.GetMonthFeed(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			utils.CreateErrorResponse("CALENDAR_FETCH_FAILED", "failed to build calendar feed"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(entries))
}

func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req models.CreateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_REQUEST", "title and starts_at are required"))
		return
	}

	identity := identityFromContext(c)
	event, err := h.calendarService.CreateEvent(c.Request.Context(), identity.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("EVENT_CREATE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(event))
}

func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("INVALID_EVENT_ID", "invalid event id"))
		return
	}

	if err := h.calendarService.DeleteEvent(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("EVENT_DELETE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "event deleted"}))
}
