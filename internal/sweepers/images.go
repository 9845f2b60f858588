package sweepers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/almatienda/catalog-service/internal/storage"
)

// imagePrefix is the storage namespace uploads land under.
const imagePrefix = "products/"

// ImageSweeper periodically removes stored uploads no product references.
// Uploads are stored before the product save that attaches them, so an
// abandoned editor session leaves files behind; anything unreferenced and
// older than the grace period is deleted.
type ImageSweeper struct {
	pool     *pgxpool.Pool
	store    storage.Storage
	logger   *zerolog.Logger
	interval time.Duration
	grace    time.Duration
	stopChan chan struct{}
}

// NewImageSweeper creates a sweeper for orphaned image cleanup.
func NewImageSweeper(pool *pgxpool.Pool, store storage.Storage, logger *zerolog.Logger, interval, grace time.Duration) *ImageSweeper {
	return &ImageSweeper{
		pool:     pool,
		store:    store,
		logger:   logger,
		interval: interval,
		grace:    grace,
		stopChan: make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (s *ImageSweeper) Start(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("grace", s.grace).
		Msg("Starting orphaned image sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Image sweeper stopping (context cancelled)")
			return
		case <-s.stopChan:
			s.logger.Info().Msg("Image sweeper stopping (stop signal)")
			return
		case <-ticker.C:
			if err := s.SweepOrphanedImages(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Failed to sweep orphaned images")
			}
		}
	}
}

// Stop signals the sweeper to stop
func (s *ImageSweeper) Stop() {
	close(s.stopChan)
}

// SweepOrphanedImages deletes stored uploads that no product_images row
// references and that are past the grace period.
func (s *ImageSweeper) SweepOrphanedImages(ctx context.Context) error {
	referenced, err := s.referencedPaths(ctx)
	if err != nil {
		return err
	}

	keys, err := s.store.List(ctx, imagePrefix)
	if err != nil {
		return fmt.Errorf("failed to list stored images: %w", err)
	}

	deleted := 0
	for _, key := range keys {
		if referenced[key] {
			continue
		}

		info, err := s.store.GetInfo(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Failed to stat stored image")
			continue
		}
		if time.Since(info.ModifiedAt) < s.grace {
			// Possibly mid-save; leave it for the next sweep.
			continue
		}

		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Failed to delete orphaned image")
			continue
		}
		deleted++
	}

	if deleted > 0 {
		s.logger.Info().
			Int("deleted", deleted).
			Int("scanned", len(keys)).
			Msg("Swept orphaned images")
	}
	return nil
}

func (s *ImageSweeper) referencedPaths(ctx context.Context) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `SELECT storage_path FROM product_images`)
	if err != nil {
		return nil, fmt.Errorf("failed to query referenced images: %w", err)
	}
	defer rows.Close()

	referenced := make(map[string]bool)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan image path: %w", err)
		}
		referenced[path] = true
	}
	return referenced, rows.Err()
}
