package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Golden Gate Park", r.URL.Query().Get("location"))
		assert.Equal(t, "2025-01-14", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary":"Partly cloudy","temperature_c":14.5,"precipitation_chance":20}`))
	}))
	defer srv.Close()

	svc := NewWeatherService(srv.URL, nil)
	forecast := svc.GetForecast(context.Background(), "Golden Gate Park", time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC))

	require.NotNil(t, forecast)
	assert.Equal(t, "Partly cloudy", forecast.Summary)
	assert.Equal(t, 14.5, forecast.TemperatureC)
	assert.Equal(t, 20, forecast.PrecipitationChance)
}

func TestGetForecastRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"summary":"Sunny","temperature_c":20,"precipitation_chance":0}`))
	}))
	defer srv.Close()

	svc := NewWeatherService(srv.URL, nil)
	forecast := svc.GetForecast(context.Background(), "Park", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	require.NotNil(t, forecast)
	assert.Equal(t, "Sunny", forecast.Summary)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetForecastDegradesToNil(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewWeatherService(srv.URL, nil)
	forecast := svc.GetForecast(context.Background(), "Park", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	assert.Nil(t, forecast)
	// Initial attempt plus the bounded retries, then give up.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetForecastHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewWeatherService(srv.URL, nil)
	assert.Nil(t, svc.GetForecast(ctx, "Park", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGetForecastSkipsEmptyInputs(t *testing.T) {
	svc := NewWeatherService("http://weather.invalid", nil)
	assert.Nil(t, svc.GetForecast(context.Background(), "", time.Now()))
	assert.Nil(t, svc.GetForecast(context.Background(), "Park", time.Time{}))
}
