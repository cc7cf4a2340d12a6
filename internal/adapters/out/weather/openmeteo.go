// Package weather reads current conditions from Open-Meteo and caches them in
// Redis.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
)

const DefaultBaseURL = "https://api.open-meteo.com"

// OpenMeteoClient implements ports.WeatherProvider.
type OpenMeteoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenMeteoClient(baseURL string, timeout time.Duration) *OpenMeteoClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenMeteoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

func (c *OpenMeteoClient) CurrentWeather(ctx context.Context, location kernel.Location) (delivery.Reading, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(location.Latitude(), 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(location.Longitude(), 'f', 4, 64))
	query.Set("current", "temperature_2m,weather_code,wind_speed_10m")
	query.Set("wind_speed_unit", "kmh")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+query.Encode(), nil)
	if err != nil {
		return delivery.Reading{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return delivery.Reading{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return delivery.Reading{}, fmt.Errorf("open-meteo responded with %s", resp.Status)
	}

	var body forecastResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return delivery.Reading{}, fmt.Errorf("decode open-meteo response: %w", err)
	}

	return delivery.Reading{
		Condition:    delivery.ConditionFromCode(body.Current.WeatherCode),
		TemperatureC: body.Current.Temperature,
		WindSpeedKmh: body.Current.WindSpeed,
	}, nil
}
