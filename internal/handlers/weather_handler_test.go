package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketing-service/internal/models"
	"marketing-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubForecastService struct {
	result *models.ForecastResult
	err    error
}

func (s *stubForecastService) GetForecast(_ context.Context, _ string) (*models.ForecastResult, error) {
	return s.result, s.err
}

func newWeatherRouter(svc services.IForecastService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/weather/forecast", NewWeatherHandler(svc).GetForecast)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestGetForecastRequiresLocation(t *testing.T) {
	r := newWeatherRouter(&stubForecastService{})

	code, body := doRequest(t, r, "/weather/forecast")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "MISSING_LOCATION", body["error"].(map[string]any)["code"])
}

func TestGetForecastUnconfiguredProvider(t *testing.T) {
	r := newWeatherRouter(&stubForecastService{err: services.ErrWeatherNotConfigured})

	code, body := doRequest(t, r, "/weather/forecast?location=Antalya")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "WEATHER_NOT_CONFIGURED", body["error"].(map[string]any)["code"])
}

func TestGetForecastProviderFailureNamesLocation(t *testing.T) {
	r := newWeatherRouter(&stubForecastService{err: fmt.Errorf("forecast: weather provider error: city not found")})

	code, body := doRequest(t, r, "/weather/forecast?location=Nowhereville")

	assert.Equal(t, http.StatusBadGateway, code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "WEATHER_FETCH_FAILED", errBody["code"])
	assert.Contains(t, errBody["message"], "city not found")
	details := errBody["details"].(map[string]any)
	assert.Equal(t, "Nowhereville", details["location"])
}

func TestGetForecastSuccessEnvelope(t *testing.T) {
	r := newWeatherRouter(&stubForecastService{result: &models.ForecastResult{
		Location: "Antalya",
		CurrentWeather: &models.CurrentConditions{
			Temperature: 24,
			Description: "clear sky",
		},
	}})

	code, body := doRequest(t, r, "/weather/forecast?location=Antalya")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Antalya", data["location"])
}
