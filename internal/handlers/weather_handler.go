package handlers

import (
	"errors"
	"net/http"

	"marketing-service/internal/services"
	"marketing-service/utils"

	"github.com/gin-gonic/gin"
)

type WeatherHandler struct {
	forecastService services.IForecastService
}

func NewWeatherHandler(forecastService services.IForecastService) *WeatherHandler {
	return &WeatherHandler{forecastService: forecastService}
}

func (h *WeatherHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	// The forecast backs the public site's weather widget; no login required.
	public.GET("/weather/forecast", h.GetForecast)
}

// GetForecast returns current conditions, today's hourly slots, and the next
// three daily summaries for the requested location. Failures never produce a
// partial result: the caller gets either the full forecast or an error that
// names the location it was asked about.
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		c.JSON(http.StatusBadRequest,
			utils.CreateErrorResponse("MISSING_LOCATION", "location query parameter is required"))
		return
	}

	result, err := h.forecastService.GetForecast(c.Request.Context(), location)
	if err != nil {
		if errors.Is(err, services.ErrWeatherNotConfigured) {
			c.JSON(http.StatusServiceUnavailable,
				utils.CreateErrorResponse("WEATHER_NOT_CONFIGURED", err.Error()))
			return
		}
		c.JSON(http.StatusBadGateway,
			utils.CreateErrorResponseWithDetails("WEATHER_FETCH_FAILED", err.Error(),
				gin.H{"location": location}))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(result))
}
