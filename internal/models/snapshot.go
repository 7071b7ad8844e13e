package models

// Snapshot is the normalized weather payload for one city at one point in
// time. Textual fields that the provider may omit hold "N/A" instead.
// Immutable once built; cached under a fixed TTL.
type Snapshot struct {
	CityID      int     `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Description string  `json:"description"`
	Temp        float64 `json:"temp"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Icon        string  `json:"icon"`
	Pressure    string  `json:"pressure"`
	Humidity    string  `json:"humidity"`
	// Visibility is kilometres with one decimal, derived from the provider's
	// metres, or "N/A" when the provider omitted it.
	Visibility string `json:"visibility"`
	WindSpeed  string `json:"wind_speed"`
	ObservedAt string `json:"dt_formatted"`
	Sunrise    string `json:"sunrise_formatted"`
	Sunset     string `json:"sunset_formatted"`
}
