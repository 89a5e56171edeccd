package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmagar/panopto-cli/internal/api"
	"github.com/jmagar/panopto-cli/internal/model"
	"github.com/rs/zerolog"
)

// FolderSource fetches folder metadata and session pages.
type FolderSource interface {
	FolderInfo(ctx context.Context, f *api.FolderURL) (*model.FolderInfoResponse, error)
	Sessions(ctx context.Context, f *api.FolderURL, page, pageSize int) (*model.SessionsResponse, error)
}

// VideoExtractor produces metadata for one session.
type VideoExtractor interface {
	ExtractVideo(ctx context.Context, v *api.VideoURL) (*model.VideoMetadata, error)
}

// AggregateStats counts what happened during one folder walk. Attempted
// includes failures; the listing itself only holds successes.
type AggregateStats struct {
	Total     int
	Pages     int
	Attempted int
	Succeeded int
	Failed    int
}

// Aggregator pages through a folder's sessions and extracts each one.
// A failing session is logged and skipped; folder-info and page failures
// abort the walk.
type Aggregator struct {
	Source   FolderSource
	Videos   VideoExtractor
	Log      zerolog.Logger
	PageSize int
}

// Aggregate walks the folder and returns its playlist.
func (a *Aggregator) Aggregate(ctx context.Context, f *api.FolderURL) (*model.FolderListing, error) {
	listing, _, err := a.AggregateWithStats(ctx, f)
	return listing, err
}

// AggregateWithStats is Aggregate plus the walk's counters.
func (a *Aggregator) AggregateWithStats(ctx context.Context, f *api.FolderURL) (*model.FolderListing, AggregateStats, error) {
	var stats AggregateStats
	log := a.Log.With().Str("folder_id", f.ID).Logger()

	info, err := a.Source.FolderInfo(ctx, f)
	if err != nil {
		return nil, stats, fmt.Errorf("folder %s: fetch folder info: %w", f.ID, err)
	}
	if err := api.Classify(info.ErrorFields); err != nil {
		return nil, stats, fmt.Errorf("folder %s: %w", f.ID, err)
	}
	title := model.StringValue(info.Name)
	if title == "" {
		title = f.ID
	}
	listing := &model.FolderListing{
		Type:    model.PlaylistType,
		ID:      f.ID,
		Title:   title,
		Entries: []*model.VideoMetadata{},
	}

	pageSize := a.PageSize
	if pageSize <= 0 {
		pageSize = api.DefaultPageSize
	}

	// The total comes from the first page only; later pages may report a
	// different number and are ignored.
	total := -1
	for page := 0; ; page++ {
		resp, err := a.Source.Sessions(ctx, f, page, pageSize)
		if err != nil {
			return nil, stats, fmt.Errorf("folder %s: fetch sessions page %d: %w", f.ID, page, err)
		}
		if err := api.Classify(resp.ErrorFields); err != nil {
			return nil, stats, fmt.Errorf("folder %s: sessions page %d: %w", f.ID, page, err)
		}
		if resp.D == nil {
			return nil, stats, fmt.Errorf("folder %s: sessions page %d has no result object", f.ID, page)
		}
		stats.Pages++
		if total < 0 {
			if resp.D.TotalNumber != nil {
				total = *resp.D.TotalNumber
			} else {
				total = 0
			}
			stats.Total = total
		}
		log.Debug().Int("page", page).Int("results", len(resp.D.Results)).Int("total", total).Msg("fetched sessions page")

		for _, session := range resp.D.Results {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
			stats.Attempted++
			meta, err := a.Videos.ExtractVideo(ctx, &api.VideoURL{Base: f.Base, ID: session.DeliveryID})
			if err != nil {
				stats.Failed++
				logSkippedVideo(log, session.DeliveryID, err)
				continue
			}
			stats.Succeeded++
			listing.Entries = append(listing.Entries, meta)
		}

		if stats.Attempted >= total {
			break
		}
		if len(resp.D.Results) == 0 {
			log.Warn().Int("page", page).Int("attempted", stats.Attempted).Int("total", total).
				Msg("empty sessions page before reported total, stopping")
			break
		}
	}

	log.Info().
		Int("total", stats.Total).
		Int("attempted", stats.Attempted).
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Msg("folder extraction finished")
	return listing, stats, nil
}

func logSkippedVideo(log zerolog.Logger, videoID string, err error) {
	ev := log.Warn().Str("video_id", videoID).Err(err)
	var derr *model.DeliveryError
	if errors.As(err, &derr) {
		ev = ev.Str("kind", string(derr.Kind))
	}
	ev.Msg("skipping video")
}
