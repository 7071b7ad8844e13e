package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	serviceWeather "github.com/Nazarious-ucu/weather-dashboard/internal/services/weather"

	"github.com/Nazarious-ucu/weather-dashboard/internal/handlers/session"
	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/repository"
)

type weatherService interface {
	ByID(ctx context.Context, cityID int) (models.Snapshot, error)
	Resolve(ctx context.Context, name string) (int, error)
}

type cityStore interface {
	Add(userID int64, cityID int) error
	Remove(userID int64, cityID int) (bool, error)
	ListByUser(userID int64) ([]int, error)
}

type Handler struct {
	Weather weatherService
	Cities  cityStore
	logger  *log.Logger
}

func NewHandler(weather weatherService, cities cityStore, logger *log.Logger) *Handler {
	return &Handler{Weather: weather, Cities: cities, logger: logger}
}

// Show renders one card per subscribed city. A failed fetch downgrades to a
// per-city warning; the rest of the page still renders.
func (h *Handler) Show(c *gin.Context) {
	userID := session.UserID(c)

	cityIDs, err := h.Cities.ListByUser(userID)
	if err != nil {
		h.logger.Printf("failed to list cities for user %d: %v", userID, err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	flashes := session.Flashes(c)

	var cards []models.Snapshot
	if len(cityIDs) == 0 {
		flashes = append(flashes, session.Flash{
			Category: "info",
			Message:  "Your dashboard is empty. Add a city using the search bar!",
		})
	}
	for _, id := range cityIDs {
		snap, err := h.Weather.ByID(c.Request.Context(), id)
		if err != nil {
			flashes = append(flashes, session.Flash{
				Category: "warning",
				Message:  fmt.Sprintf("Could not fetch weather data for city code %d.", id),
			})
			continue
		}
		cards = append(cards, snap)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Flashes": flashes,
		"Cards":   cards,
	})
}

func (h *Handler) AddCity(c *gin.Context) {
	userID := session.UserID(c)

	cityName := c.PostForm("city_name")
	if cityName == "" {
		session.AddFlash(c, "error", "You must enter a city name.")
		c.Redirect(http.StatusFound, "/weather")
		return
	}

	cityID, err := h.Weather.Resolve(c.Request.Context(), cityName)
	if err != nil {
		if !errors.Is(err, serviceWeather.ErrCityNotFound) {
			h.logger.Printf("city lookup failed for %q: %v", cityName, err)
		}
		session.AddFlash(c, "error", fmt.Sprintf("Could not find a city named '%s'.", cityName))
		c.Redirect(http.StatusFound, "/weather")
		return
	}

	switch err := h.Cities.Add(userID, cityID); {
	case errors.Is(err, repository.ErrCityExists):
		session.AddFlash(c, "warning", fmt.Sprintf("%s is already in your list.", cityName))
	case err != nil:
		h.logger.Printf("failed to add city %d for user %d: %v", cityID, userID, err)
		session.AddFlash(c, "error", "Could not save the city. Please try again.")
	default:
		session.AddFlash(c, "success", fmt.Sprintf("Added %s to your dashboard.", cityName))
	}
	c.Redirect(http.StatusFound, "/weather")
}

func (h *Handler) DeleteCity(c *gin.Context) {
	userID := session.UserID(c)

	cityID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "error", "City not found or you do not have permission to remove it.")
		c.Redirect(http.StatusFound, "/weather")
		return
	}

	removed, err := h.Cities.Remove(userID, cityID)
	if err != nil {
		h.logger.Printf("failed to remove city %d for user %d: %v", cityID, userID, err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	if removed {
		session.AddFlash(c, "success", "City removed.")
	} else {
		session.AddFlash(c, "error", "City not found or you do not have permission to remove it.")
	}
	c.Redirect(http.StatusFound, "/weather")
}

func (h *Handler) Detail(c *gin.Context) {
	cityID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.AddFlash(c, "error", "Unknown city.")
		c.Redirect(http.StatusFound, "/weather")
		return
	}

	snap, err := h.Weather.ByID(c.Request.Context(), cityID)
	if err != nil {
		session.AddFlash(c, "error", fmt.Sprintf("Could not retrieve weather data for city ID %d.", cityID))
		c.Redirect(http.StatusFound, "/weather")
		return
	}

	c.HTML(http.StatusOK, "city_detail.html", gin.H{
		"Flashes": session.Flashes(c),
		"City":    snap,
	})
}
