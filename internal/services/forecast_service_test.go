package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketing-service/internal/config"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const antalyaOffset = 3 * 60 * 60

func mkSample(at time.Time, temp, pop float64, desc string) forecastSample {
	s := forecastSample{Dt: at.Unix(), Pop: pop}
	s.Main.Temp = temp
	s.Weather = []weatherEntry{{Description: desc, Icon: "01d"}}
	return s
}

func mkPayload(timezone int, samples []forecastSample) forecastPayload {
	var p forecastPayload
	p.City.Timezone = timezone
	p.List = samples
	return p
}

func TestAggregateForecastFiveDayFeed(t *testing.T) {
	// Local time in Antalya is 15:00; three 3-hour samples remain today.
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	samples := make([]forecastSample, 0, 40)
	for i := 0; i < 40; i++ {
		samples = append(samples, mkSample(now.Add(time.Duration(i)*3*time.Hour), 20.6, 0.3, "scattered clouds"))
	}

	hourly, daily := aggregateForecast(mkPayload(antalyaOffset, samples), now)

	require.Len(t, hourly, 3)
	assert.Equal(t, "15:00", hourly[0].Time)
	assert.Equal(t, 21, hourly[0].Temperature)
	assert.Equal(t, 30, hourly[0].PrecipitationChance)
	assert.Equal(t, "scattered clouds", hourly[0].Description)

	// Today plus three future days are bucketed; today is excluded from the
	// summaries, leaving exactly three.
	require.Len(t, daily, 3)
	assert.Equal(t, "Tomorrow", daily[0].Label)
	assert.Equal(t, "03 Mar 2026", daily[0].Date)
	assert.Equal(t, "Wednesday", daily[1].Label)
	assert.Equal(t, "Thursday", daily[2].Label)
	for _, d := range daily {
		assert.Equal(t, 21, d.MinTemperature)
		assert.Equal(t, 21, d.MaxTemperature)
		assert.Equal(t, 30, d.PrecipitationChance)
		assert.LessOrEqual(t, d.MinTemperature, d.MaxTemperature)
	}
}

func TestAggregateForecastBucketCapFirstSeenWins(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	localNoon := func(day int) time.Time {
		// Noon in provider-local time, expressed in UTC.
		return time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC)
	}

	// Day 6 arrives before day 5: the cap admits days 2, 3, 4, 6 and day 5
	// never opens a bucket.
	samples := []forecastSample{
		mkSample(localNoon(2), 20, 0.1, "clear sky"),
		mkSample(localNoon(3), 20, 0.1, "clear sky"),
		mkSample(localNoon(4), 20, 0.1, "clear sky"),
		mkSample(localNoon(6), 20, 0.1, "clear sky"),
		mkSample(localNoon(5), 20, 0.1, "clear sky"),
	}

	_, daily := aggregateForecast(mkPayload(antalyaOffset, samples), now)

	require.Len(t, daily, 3)
	assert.Equal(t, "03 Mar 2026", daily[0].Date)
	assert.Equal(t, "04 Mar 2026", daily[1].Date)
	assert.Equal(t, "06 Mar 2026", daily[2].Date)
	for _, d := range daily {
		assert.NotEqual(t, "05 Mar 2026", d.Date)
	}
}

func TestAggregateForecastProviderLocalMidnight(t *testing.T) {
	// 22:30 UTC is already 01:30 the next day in Antalya, so "today" is the
	// provider-local 3rd of March.
	now := time.Date(2026, 3, 2, 22, 30, 0, 0, time.UTC)

	samples := []forecastSample{
		// 23:00 local on the 2nd: provider-local yesterday, dropped.
		mkSample(time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC), 15, 0.2, "light rain"),
		// 02:00 local on the 3rd.
		mkSample(time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC), 14, 0.2, "light rain"),
		// 12:00 local on the 3rd.
		mkSample(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), 18, 0.2, "light rain"),
	}

	hourly, daily := aggregateForecast(mkPayload(antalyaOffset, samples), now)

	require.Len(t, hourly, 2)
	assert.Equal(t, "02:00", hourly[0].Time)
	assert.Equal(t, "12:00", hourly[1].Time)
	assert.Empty(t, daily)
}

func TestAggregateForecastNegativeOffset(t *testing.T) {
	// UTC-5: 02:00 UTC on the 3rd is still 21:00 on the 2nd locally.
	now := time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC)

	samples := []forecastSample{
		mkSample(time.Date(2026, 3, 3, 3, 0, 0, 0, time.UTC), 10, 0, "clear sky"),
	}

	hourly, daily := aggregateForecast(mkPayload(-5*60*60, samples), now)

	require.Len(t, hourly, 1)
	assert.Equal(t, "22:00", hourly[0].Time)
	assert.Empty(t, daily)
}

func TestAggregateForecastDailyRanges(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	day3 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	samples := []forecastSample{
		mkSample(day3, 12.4, 0.15, "overcast clouds"),
		mkSample(day3.Add(3*time.Hour), 17.6, 0.85, "moderate rain"),
		mkSample(day3.Add(6*time.Hour), 14.0, 0.4, "light rain"),
	}

	_, daily := aggregateForecast(mkPayload(antalyaOffset, samples), now)

	require.Len(t, daily, 1)
	assert.Equal(t, 12, daily[0].MinTemperature)
	assert.Equal(t, 18, daily[0].MaxTemperature)
	// Highest probability of the day wins.
	assert.Equal(t, 85, daily[0].PrecipitationChance)
	// Representative condition comes from the day's midpoint sample.
	assert.Equal(t, "moderate rain", daily[0].Description)
}

func TestAggregateForecastEmptyList(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	hourly, daily := aggregateForecast(mkPayload(antalyaOffset, nil), now)

	assert.Empty(t, hourly)
	assert.Empty(t, daily)
}

func newTestForecastService(baseURL string, now time.Time) *ForecastService {
	return &ForecastService{
		cfg: config.WeatherConfig{
			APIKey:  "test-key",
			BaseURL: baseURL,
		},
		client:  &http.Client{Timeout: 5 * time.Second},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "openweather-test"}),
		now:     func() time.Time { return now },
	}
}

func TestGetForecastWithoutAPIKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := newTestForecastService(server.URL, time.Now())
	svc.cfg.APIKey = ""

	result, err := svc.GetForecast(context.Background(), "Antalya")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrWeatherNotConfigured)
	assert.False(t, called, "missing credential must fail before any network call")
}

func TestGetForecastSurfacesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"cod": "404", "message": "city not found"})
	}))
	defer server.Close()

	svc := newTestForecastService(server.URL, time.Now())

	result, err := svc.GetForecast(context.Background(), "Nowhereville")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "city not found")
}

func TestGetForecastFullResult(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	forecast := mkPayload(antalyaOffset, []forecastSample{
		// 15:00 provider-local today.
		mkSample(now, 20.6, 0.2, "few clouds"),
		// Noon tomorrow.
		mkSample(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), 18.2, 0.5, "light rain"),
	})

	var current currentWeatherPayload
	current.Main.Temp = 21.4
	current.Main.FeelsLike = 20.2
	current.Main.Humidity = 60
	current.Wind.Speed = 3.4
	current.Weather = []weatherEntry{{Description: "few clouds", Icon: "02d"}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Antalya", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		switch r.URL.Path {
		case "/weather":
			json.NewEncoder(w).Encode(current)
		case "/forecast":
			json.NewEncoder(w).Encode(forecast)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	svc := newTestForecastService(server.URL, now)

	result, err := svc.GetForecast(context.Background(), "Antalya")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Antalya", result.Location)

	require.NotNil(t, result.CurrentWeather)
	assert.Equal(t, 21, result.CurrentWeather.Temperature)
	assert.Equal(t, 20, result.CurrentWeather.FeelsLike)
	assert.Equal(t, 60, result.CurrentWeather.Humidity)
	assert.Equal(t, "few clouds", result.CurrentWeather.Description)

	require.Len(t, result.TodayHourly, 1)
	assert.Equal(t, "15:00", result.TodayHourly[0].Time)

	require.Len(t, result.ThreeDaySummary, 1)
	assert.Equal(t, "Tomorrow", result.ThreeDaySummary[0].Label)
	assert.Equal(t, 50, result.ThreeDaySummary[0].PrecipitationChance)
}

func TestGetForecastFailsFastOnForecastError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather":
			json.NewEncoder(w).Encode(currentWeatherPayload{})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "backend unavailable"})
		}
	}))
	defer server.Close()

	svc := newTestForecastService(server.URL, time.Now())

	result, err := svc.GetForecast(context.Background(), "Antalya")

	// No partial result: a working current-conditions call cannot rescue a
	// failed forecast call.
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
}
