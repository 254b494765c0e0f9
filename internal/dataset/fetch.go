package dataset

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/storewatch/storewatch-api/internal/config"
)

// EnsureData makes sure the three CSV files exist in cfg.Dir, downloading
// and extracting the dataset archive when they do not. With no URL
// configured the files must already be in place.
func EnsureData(ctx context.Context, cfg config.DatasetConfig, logger zerolog.Logger) error {
	missing := missingFiles(cfg)
	if len(missing) == 0 {
		logger.Info().Str("dir", cfg.Dir).Msg("Dataset files already present")
		return nil
	}
	if cfg.URL == "" {
		return errors.Errorf("dataset files missing (%s) and no dataset url configured", strings.Join(missing, ", "))
	}

	logger.Info().Str("url", cfg.URL).Msg("Downloading dataset archive")
	if err := downloadAndExtract(ctx, cfg.URL, cfg.Dir); err != nil {
		return err
	}

	if missing := missingFiles(cfg); len(missing) > 0 {
		return errors.Errorf("dataset archive did not contain: %s", strings.Join(missing, ", "))
	}
	logger.Info().Str("dir", cfg.Dir).Msg("Dataset files downloaded and extracted")
	return nil
}

func missingFiles(cfg config.DatasetConfig) []string {
	var missing []string
	for _, name := range []string{cfg.StatusFile, cfg.BusinessHoursFile, cfg.TimezonesFile} {
		if _, err := os.Stat(filepath.Join(cfg.Dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

func downloadAndExtract(ctx context.Context, url, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create dataset directory")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build dataset request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to download dataset")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("failed to download dataset: %s", resp.Status)
	}

	zipPath := filepath.Join(dir, "data.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		return errors.Wrap(err, "failed to create archive file")
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to save archive")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to close archive file")
	}
	defer os.Remove(zipPath)

	return extractZip(zipPath, dir)
}

func extractZip(zipPath, dir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return errors.Wrap(err, "failed to open dataset archive")
	}
	defer zr.Close()

	for _, file := range zr.File {
		if file.FileInfo().IsDir() {
			continue
		}
		// Flatten: the archive may nest files under a directory.
		target := filepath.Join(dir, filepath.Base(file.Name))
		if err := extractFile(file, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(file *zip.File, target string) error {
	rc, err := file.Open()
	if err != nil {
		return errors.Wrapf(err, "failed to open %s in archive", file.Name)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", target)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return errors.Wrapf(err, "failed to extract %s", file.Name)
	}
	return nil
}
