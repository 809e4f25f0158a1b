package pets

import (
	"context"
	"fmt"
	"time"

	"pet-social/internal/platform/logger"
)

// DefaultSweepGrace protege los blobs recién subidos cuyo insert/update todavía no llegó.
const DefaultSweepGrace = time.Hour

type SweepOptions struct {
	Prefix string        // "" = todo el bucket
	Grace  time.Duration // <= 0 usa DefaultSweepGrace
	DryRun bool
}

type SweepReport struct {
	Scanned    int
	Referenced int
	Young      int // sin referencia pero dentro del grace
	Orphaned   int // sin referencia y fuera del grace
	Removed    int
	Failed     int
}

// Sweeper recupera blobs que ningún record referencia: los que dejaron los
// borrados best-effort que fallaron.
type Sweeper struct {
	repo    Repository
	assets  ListableAssetStore
	log     logger.Logger
	metrics AssetObserver
	now     func() time.Time
}

func NewSweeper(repo Repository, assets ListableAssetStore, opts ServiceOptions) *Sweeper {
	opts = opts.withDefaults()
	return &Sweeper{
		repo:    repo,
		assets:  assets,
		log:     opts.Logger,
		metrics: opts.Metrics,
		now:     time.Now,
	}
}

// Sweep nunca borra un blob referenciado. Las fallas de borrado se cuentan y
// no cortan el barrido; solo falla si no puede listar records o blobs.
func (s *Sweeper) Sweep(ctx context.Context, opts SweepOptions) (SweepReport, error) {
	grace := opts.Grace
	if grace <= 0 {
		grace = DefaultSweepGrace
	}
	log := logger.FromContext(ctx, s.log).With(logger.Fields{"op": "pets.sweep", "prefix": opts.Prefix, "dry_run": opts.DryRun})

	urls, err := s.repo.ListImageURLs(ctx)
	if err != nil {
		return SweepReport{}, fmt.Errorf("%w: list image urls: %v", ErrStore, err)
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		p, err := s.assets.PathFromURL(u)
		if err != nil {
			log.Warn("could not parse pet image url", logger.Fields{"image_url": u, "error": err})
			continue
		}
		referenced[p] = struct{}{}
	}

	blobs, err := s.assets.List(ctx, opts.Prefix)
	if err != nil {
		return SweepReport{}, fmt.Errorf("list assets: %w", err)
	}

	var rep SweepReport
	cutoff := s.now().Add(-grace)
	for _, b := range blobs {
		rep.Scanned++
		if _, ok := referenced[b.Path]; ok {
			rep.Referenced++
			continue
		}
		if b.LastModified.After(cutoff) {
			rep.Young++
			continue
		}
		rep.Orphaned++
		if opts.DryRun {
			log.Info("orphan pet image", logger.Fields{"path": b.Path, "size": b.Size})
			continue
		}

		err := s.assets.Remove(ctx, b.Path)
		s.metrics.ObserveRemoval(RemovalSweep, err)
		if err != nil {
			rep.Failed++
			log.Warn("pet image removal failed", logger.Fields{"path": b.Path, "reason": RemovalSweep, "error": err})
			continue
		}
		rep.Removed++
	}

	log.Info("sweep finished", logger.Fields{
		"scanned":    rep.Scanned,
		"referenced": rep.Referenced,
		"young":      rep.Young,
		"orphaned":   rep.Orphaned,
		"removed":    rep.Removed,
		"failed":     rep.Failed,
	})
	return rep, nil
}
