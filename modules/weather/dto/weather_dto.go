package dto

// Forecast is the simple forecast value embedded in event responses. A nil
// forecast means the lookup was skipped or failed; that is a degraded
// success, never a request failure.
type Forecast struct {
	Summary             string  `json:"summary"`
	TemperatureC        float64 `json:"temperature_c"`
	PrecipitationChance int     `json:"precipitation_chance"`
}
