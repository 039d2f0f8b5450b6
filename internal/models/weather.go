package models

// CurrentConditions is the rounded snapshot derived from the provider's
// current-weather response. Request-scoped, never persisted.
type CurrentConditions struct {
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// HourlySlot is one 3-hour forecast sample restricted to the provider-local
// calendar day of the request, re-keyed to a display time.
type HourlySlot struct {
	Time                string `json:"time"` // HH:mm in the provider's timezone
	Temperature         int    `json:"temperature"`
	PrecipitationChance int    `json:"precipitation_chance"`
	Description         string `json:"description"`
	Icon                string `json:"icon"`
}

// DailySummary aggregates all samples sharing one calendar day.
type DailySummary struct {
	Label               string `json:"label"` // weekday name, or "Tomorrow"
	Date                string `json:"date"`
	MinTemperature      int    `json:"min_temperature"`
	MaxTemperature      int    `json:"max_temperature"`
	PrecipitationChance int    `json:"precipitation_chance"`
	Description         string `json:"description"`
	Icon                string `json:"icon"`
}

type ForecastResult struct {
	Location        string             `json:"location"`
	CurrentWeather  *CurrentConditions `json:"current_weather"`
	TodayHourly     []HourlySlot       `json:"today_hourly_forecast"`
	ThreeDaySummary []DailySummary     `json:"three_day_summary_forecast"`
}
