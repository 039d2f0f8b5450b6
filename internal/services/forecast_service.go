package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"marketing-service/internal/config"
	"marketing-service/internal/models"

	"github.com/sony/gobreaker"
)

// ErrWeatherNotConfigured is returned before any network call when the
// provider credential is absent.
var ErrWeatherNotConfigured = errors.New("weather api key not configured")

// maxDayBuckets caps the per-day accumulation at today plus three future
// days. Admission is first-seen-wins: once the cap is reached no new day key
// is opened, regardless of input order.
const maxDayBuckets = 4

const dayKeyFormat = "2006-01-02"

type IForecastService interface {
	// GetForecast fetches current conditions and the 5-day/3-hour forecast
	// for the location and derives today's hourly view plus a 3-day summary.
	// Fail-fast: any provider failure aborts the whole call, no partial data.
	GetForecast(ctx context.Context, location string) (*models.ForecastResult, error)
}

type ForecastService struct {
	cfg     config.WeatherConfig
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewForecastService(cfg config.WeatherConfig) IForecastService {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &ForecastService{
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		circuit: cb,
		now:     time.Now,
	}
}

type weatherEntry struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentWeatherPayload struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []weatherEntry `json:"weather"`
}

type forecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Pop     float64        `json:"pop"`
	Weather []weatherEntry `json:"weather"`
}

type forecastPayload struct {
	City struct {
		// Timezone is the provider-reported UTC offset in seconds. "Today"
		// is computed against this offset, not the server clock, so samples
		// near midnight land in the right bucket for remote locations.
		Timezone int `json:"timezone"`
	} `json:"city"`
	List []forecastSample `json:"list"`
}

type providerError struct {
	Message string `json:"message"`
}

func (s *ForecastService) GetForecast(ctx context.Context, location string) (*models.ForecastResult, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrWeatherNotConfigured
	}

	var current currentWeatherPayload
	if err := s.fetch(ctx, "/weather", location, &current); err != nil {
		return nil, fmt.Errorf("current conditions: %w", err)
	}

	var forecast forecastPayload
	if err := s.fetch(ctx, "/forecast", location, &forecast); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	hourly, daily := aggregateForecast(forecast, s.now())

	return &models.ForecastResult{
		Location:        location,
		CurrentWeather:  buildCurrentConditions(current),
		TodayHourly:     hourly,
		ThreeDaySummary: daily,
	}, nil
}

// fetch issues one provider GET through the circuit breaker and decodes the
// JSON body into out. The location string is forwarded verbatim.
func (s *ForecastService) fetch(ctx context.Context, path, location string, out any) error {
	values := url.Values{}
	values.Set("q", location)
	values.Set("appid", s.cfg.APIKey)
	values.Set("units", "metric")
	if s.cfg.Lang != "" {
		values.Set("lang", s.cfg.Lang)
	}
	endpoint := fmt.Sprintf("%s%s?%s", s.cfg.BaseURL, path, values.Encode())

	body, err := s.circuit.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to call weather provider: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read provider response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			// Prefer the provider's own message when it sent one.
			var perr providerError
			if err := json.Unmarshal(data, &perr); err == nil && perr.Message != "" {
				return nil, fmt.Errorf("weather provider error: %s", perr.Message)
			}
			return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("failed to parse provider response: %w", err)
	}
	return nil
}

func buildCurrentConditions(p currentWeatherPayload) *models.CurrentConditions {
	current := &models.CurrentConditions{
		Temperature: int(math.Round(p.Main.Temp)),
		FeelsLike:   int(math.Round(p.Main.FeelsLike)),
		Humidity:    p.Main.Humidity,
		WindSpeed:   p.Wind.Speed,
	}
	if len(p.Weather) > 0 {
		current.Description = p.Weather[0].Description
		current.Icon = p.Weather[0].Icon
	}
	return current
}

type dayBucket struct {
	temps []float64
	pops  []float64
	descs []string
	icons []string
}

// aggregateForecast buckets the 3-hour samples by provider-local calendar
// day, projecting today's samples into the hourly list and the following
// days into at most three daily summaries.
func aggregateForecast(p forecastPayload, now time.Time) ([]models.HourlySlot, []models.DailySummary) {
	loc := time.FixedZone("provider", p.City.Timezone)
	todayKey := now.In(loc).Format(dayKeyFormat)
	tomorrowKey := now.In(loc).AddDate(0, 0, 1).Format(dayKeyFormat)

	hourly := []models.HourlySlot{}
	buckets := make(map[string]*dayBucket)

	for _, sample := range p.List {
		sampleTime := time.Unix(sample.Dt, 0).In(loc)
		dayKey := sampleTime.Format(dayKeyFormat)
		if dayKey < todayKey {
			continue
		}

		description, icon := "", ""
		if len(sample.Weather) > 0 {
			description = sample.Weather[0].Description
			icon = sample.Weather[0].Icon
		}

		if dayKey == todayKey {
			hourly = append(hourly, models.HourlySlot{
				Time:                sampleTime.Format("15:04"),
				Temperature:         int(math.Round(sample.Main.Temp)),
				PrecipitationChance: int(math.Round(sample.Pop * 100)),
				Description:         description,
				Icon:                icon,
			})
		}

		bucket, ok := buckets[dayKey]
		if !ok {
			if len(buckets) >= maxDayBuckets {
				continue
			}
			bucket = &dayBucket{}
			buckets[dayKey] = bucket
		}
		bucket.temps = append(bucket.temps, sample.Main.Temp)
		bucket.pops = append(bucket.pops, sample.Pop)
		bucket.descs = append(bucket.descs, description)
		bucket.icons = append(bucket.icons, icon)
	}

	dayKeys := make([]string, 0, len(buckets))
	for key := range buckets {
		dayKeys = append(dayKeys, key)
	}
	sort.Strings(dayKeys)

	daily := []models.DailySummary{}
	for _, key := range dayKeys {
		if key == todayKey {
			continue
		}
		if len(daily) >= maxDayBuckets-1 {
			break
		}
		bucket := buckets[key]
		if len(bucket.temps) == 0 {
			continue
		}

		minTemp, maxTemp := bucket.temps[0], bucket.temps[0]
		maxPop := bucket.pops[0]
		for i := 1; i < len(bucket.temps); i++ {
			if bucket.temps[i] < minTemp {
				minTemp = bucket.temps[i]
			}
			if bucket.temps[i] > maxTemp {
				maxTemp = bucket.temps[i]
			}
			if bucket.pops[i] > maxPop {
				maxPop = bucket.pops[i]
			}
		}

		// Representative sample: the temporal midpoint of the day's list.
		mid := len(bucket.descs) / 2
		if mid >= len(bucket.descs) {
			mid = 0
		}

		day, _ := time.ParseInLocation(dayKeyFormat, key, loc)
		label := day.Weekday().String()
		if key == tomorrowKey {
			label = "Tomorrow"
		}

		daily = append(daily, models.DailySummary{
			Label:               label,
			Date:                day.Format("02 Jan 2006"),
			MinTemperature:      int(math.Round(minTemp)),
			MaxTemperature:      int(math.Round(maxTemp)),
			PrecipitationChance: int(math.Round(maxPop * 100)),
			Description:         bucket.descs[mid],
			Icon:                bucket.icons[mid],
		})
	}

	return hourly, daily
}
