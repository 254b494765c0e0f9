// Package report implements the uptime report pipeline: dataset loading,
// timezone-aware business-hours matching, per-store aggregation and payload
// formatting.
package report

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/storewatch/storewatch-api/internal/dataset"
	"github.com/storewatch/storewatch-api/internal/models"
)

// Pipeline runs one report computation end to end. Each run builds its own
// index and aggregate map from scratch; nothing is shared between runs.
type Pipeline struct {
	source    dataset.Source
	defaultTZ string
	logger    zerolog.Logger
}

func NewPipeline(source dataset.Source, defaultTZ string, logger zerolog.Logger) *Pipeline {
	return &Pipeline{source: source, defaultTZ: defaultTZ, logger: logger}
}

// Run executes the pipeline and returns the finished payload.
func (p *Pipeline) Run(ctx context.Context) (*models.ReportData, error) {
	zones, err := p.loadTimezones()
	if err != nil {
		return nil, err
	}
	p.logger.Info().Int("stores", len(zones)).Msg("Loaded timezone data")

	intervals, err := p.loadBusinessHours()
	if err != nil {
		return nil, err
	}
	hours := NewHoursIndex(intervals)
	p.logger.Info().
		Int("intervals", len(intervals)).
		Int("stores", hours.StoreCount()).
		Msg("Loaded business hours")

	resolver := NewTimezoneResolver(zones, p.defaultTZ)
	agg := NewAggregator(resolver, hours)

	polls, err := p.source.StatusPolls()
	if err != nil {
		return nil, err
	}
	defer polls.Close()

	count := 0
	err = dataset.ReadPolls(polls, func(poll models.StorePoll) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		return agg.Add(poll)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to process status polls")
	}
	p.logger.Info().
		Int("polls", count).
		Int("stores", len(agg.Aggregates())).
		Msg("Processed status data")

	return Format(agg.Aggregates(), time.Now().UTC()), nil
}

func (p *Pipeline) loadTimezones() (map[string]string, error) {
	r, err := p.source.Timezones()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	zones, err := dataset.ReadTimezones(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load timezones")
	}
	return zones, nil
}

func (p *Pipeline) loadBusinessHours() ([]models.BusinessInterval, error) {
	r, err := p.source.BusinessHours()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	intervals, err := dataset.ReadBusinessHours(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load business hours")
	}
	return intervals, nil
}
