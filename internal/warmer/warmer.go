package warmer

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

type cityLister interface {
	ListDistinct() ([]int, error)
}

type weatherService interface {
	ByID(ctx context.Context, cityID int) (models.Snapshot, error)
}

// Warmer periodically pulls every subscribed city through the weather
// service so dashboards render from a warm cache. Failures are logged and
// skipped; a cold card just falls back to a lazy fetch.
type Warmer struct {
	cities  cityLister
	weather weatherService
	logger  *log.Logger

	schedule string
	cron     *cron.Cron
}

func New(cities cityLister, weather weatherService, logger *log.Logger, schedule string) *Warmer {
	return &Warmer{
		cities:   cities,
		weather:  weather,
		logger:   logger,
		schedule: schedule,
		cron:     cron.New(),
	}
}

func (w *Warmer) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.run(ctx) }); err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Warmer) run(ctx context.Context) {
	ids, err := w.cities.ListDistinct()
	if err != nil {
		w.logger.Printf("warmer: failed to list cities: %v", err)
		return
	}

	for _, id := range ids {
		if _, err := w.weather.ByID(ctx, id); err != nil {
			w.logger.Printf("warmer: fetch failed for city %d: %v", id, err)
		}
	}
}
