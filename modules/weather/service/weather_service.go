package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gameday-api/core/cache"
	"gameday-api/core/constants"
	"gameday-api/core/logger"
	"gameday-api/modules/weather/dto"
)

// WeatherService fetches a forecast for an event's location and date.
// Strictly best-effort: bounded timeout, a small fixed retry count with
// capped exponential backoff, and a nil result on any failure.
type WeatherService struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

type WeatherServiceInterface interface {
	GetForecast(ctx context.Context, location string, date time.Time) *dto.Forecast
}

func NewWeatherService(baseURL string, c *cache.Cache) WeatherServiceInterface {
	return &WeatherService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: constants.WeatherTimeout},
		cache:   c,
	}
}

// GetForecast returns the forecast or nil. Failures are logged and
// swallowed; the caller embeds weather: null and moves on.
func (s *WeatherService) GetForecast(ctx context.Context, location string, date time.Time) *dto.Forecast {
	if location == "" || date.IsZero() {
		return nil
	}

	day := date.UTC().Format("2006-01-02")
	cacheKey := location + ":" + day

	if s.cache != nil {
		var cached dto.Forecast
		if err := s.cache.GetWeather(ctx, cacheKey, &cached); err == nil {
			return &cached
		}
	}

	forecast, err := s.fetchWithRetry(ctx, location, day)
	if err != nil {
		logger.Warn("WeatherService:GetForecast", "location", location, "date", day, "error", err)
		return nil
	}

	if s.cache != nil {
		s.cache.SetWeather(ctx, cacheKey, forecast)
	}
	return forecast
}

func (s *WeatherService) fetchWithRetry(ctx context.Context, location, day string) (*dto.Forecast, error) {
	backoff := constants.WeatherBackoffBase
	var lastErr error

	for attempt := 0; attempt <= constants.WeatherMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
			if backoff > constants.WeatherBackoffCap {
				backoff = constants.WeatherBackoffCap
			}
		}

		forecast, err := s.fetch(ctx, location, day)
		if err == nil {
			return forecast, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *WeatherService) fetch(ctx context.Context, location, day string) (*dto.Forecast, error) {
	q := url.Values{}
	q.Set("location", location)
	q.Set("date", day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, err
	}

	var forecast dto.Forecast
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	return &forecast, nil
}
