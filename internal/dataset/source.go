// Package dataset streams typed rows out of the three tabular sources the
// report pipeline consumes: status polls, business hours and timezones.
// Loading is fail-fast: one malformed row aborts the whole load.
package dataset

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/storewatch/storewatch-api/internal/config"
)

// Source hands out a fresh reader per call for each of the three tables, so
// every pipeline run gets its own single-pass sequence.
type Source interface {
	StatusPolls() (io.ReadCloser, error)
	BusinessHours() (io.ReadCloser, error)
	Timezones() (io.ReadCloser, error)
}

type fileSource struct {
	statusPath string
	hoursPath  string
	tzPath     string
}

// NewFileSource returns a Source backed by the CSV files in cfg.Dir.
func NewFileSource(cfg config.DatasetConfig) Source {
	return &fileSource{
		statusPath: filepath.Join(cfg.Dir, cfg.StatusFile),
		hoursPath:  filepath.Join(cfg.Dir, cfg.BusinessHoursFile),
		tzPath:     filepath.Join(cfg.Dir, cfg.TimezonesFile),
	}
}

func (s *fileSource) StatusPolls() (io.ReadCloser, error) {
	return openFile(s.statusPath)
}

func (s *fileSource) BusinessHours() (io.ReadCloser, error) {
	return openFile(s.hoursPath)
}

func (s *fileSource) Timezones() (io.ReadCloser, error) {
	return openFile(s.tzPath)
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset file %s", path)
	}
	return f, nil
}
