package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

// codValue is the status code embedded in the body; the provider emits it as
// a number on id queries and as a string on some error paths, so both decode
// into the bare digits.
type codValue string

func (c *codValue) UnmarshalJSON(data []byte) error {
	*c = codValue(strings.Trim(string(data), `"`))
	return nil
}

// apiResponse mirrors the provider's current-weather document. Optional
// fields are pointers so absence survives decoding and can be defaulted in
// one place.
type apiResponse struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Cod  codValue `json:"cod"`
	Main struct {
		Temp     *float64 `json:"temp"`
		TempMin  *float64 `json:"temp_min"`
		TempMax  *float64 `json:"temp_max"`
		Pressure *int     `json:"pressure"`
		Humidity *int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Sys struct {
		Country string `json:"country"`
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Visibility *int   `json:"visibility"`
	Timezone   *int64 `json:"timezone"`
	Dt         *int64 `json:"dt"`
	Message    string `json:"message"`
}

func (r apiResponse) ok() bool {
	return r.Cod == "200"
}

// newSnapshot normalizes a raw provider document into a Snapshot. Every
// optional field falls back to its default individually; a hole in the
// response never fails the whole snapshot.
func newSnapshot(cityID int, raw apiResponse, now time.Time) models.Snapshot {
	snap := models.Snapshot{
		CityID:      cityID,
		Name:        raw.Name,
		Country:     raw.Sys.Country,
		Description: notAvailable,
		Icon:        "",
		Pressure:    notAvailable,
		Humidity:    notAvailable,
		Visibility:  notAvailable,
		WindSpeed:   notAvailable,
		ObservedAt:  formatLocalTime(raw.Dt, raw.Timezone, now),
		Sunrise:     formatLocalTime(raw.Sys.Sunrise, raw.Timezone, now),
		Sunset:      formatLocalTime(raw.Sys.Sunset, raw.Timezone, now),
	}

	if snap.Name == "" {
		snap.Name = notAvailable
	}

	if len(raw.Weather) > 0 {
		if raw.Weather[0].Description != "" {
			snap.Description = raw.Weather[0].Description
		}
		snap.Icon = raw.Weather[0].Icon
	}

	if raw.Main.Temp != nil {
		snap.Temp = *raw.Main.Temp
	}
	if raw.Main.TempMin != nil {
		snap.TempMin = *raw.Main.TempMin
	}
	if raw.Main.TempMax != nil {
		snap.TempMax = *raw.Main.TempMax
	}
	if raw.Main.Pressure != nil {
		snap.Pressure = strconv.Itoa(*raw.Main.Pressure)
	}
	if raw.Main.Humidity != nil {
		snap.Humidity = strconv.Itoa(*raw.Main.Humidity)
	}
	if raw.Visibility != nil {
		snap.Visibility = fmt.Sprintf("%.1f", float64(*raw.Visibility)/1000.0)
	}
	if raw.Wind.Speed != nil {
		snap.WindSpeed = strconv.FormatFloat(*raw.Wind.Speed, 'f', -1, 64)
	}

	return snap
}
