// Package extract turns Panopto API responses into video metadata and
// folder playlists.
package extract

import (
	"context"
	"fmt"

	"github.com/jmagar/panopto-cli/internal/api"
	"github.com/jmagar/panopto-cli/internal/model"
	"github.com/rs/zerolog"
)

// DeliverySource fetches the raw delivery payload for a session.
type DeliverySource interface {
	DeliveryInfo(ctx context.Context, v *api.VideoURL) (*model.DeliveryInfoResponse, error)
}

// Source is everything the Extractor needs from the transport.
// *api.Client satisfies it.
type Source interface {
	DeliverySource
	FolderSource
}

// Extractor routes URLs to single-video or folder extraction.
type Extractor struct {
	source Source
	log    zerolog.Logger
}

// New returns an Extractor backed by source.
func New(source Source, log zerolog.Logger) *Extractor {
	return &Extractor{source: source, log: log}
}

// ExtractVideo fetches, classifies and normalizes one session. Any failure
// aborts this extraction.
func (e *Extractor) ExtractVideo(ctx context.Context, v *api.VideoURL) (*model.VideoMetadata, error) {
	resp, err := e.source.DeliveryInfo(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("video %s: fetch delivery info: %w", v.ID, err)
	}
	if err := api.Classify(resp.ErrorFields); err != nil {
		return nil, fmt.Errorf("video %s: %w", v.ID, err)
	}
	return NormalizeDelivery(resp.Delivery, v.ID)
}

// ExtractFolder builds the playlist for a folder.
func (e *Extractor) ExtractFolder(ctx context.Context, f *api.FolderURL) (*model.FolderListing, AggregateStats, error) {
	agg := &Aggregator{
		Source: e.source,
		Videos: e,
		Log:    e.log.With().Str("component", "folder").Logger(),
	}
	return agg.AggregateWithStats(ctx, f)
}

// Extract parses rawURL and runs the matching extraction. URLs that are
// neither viewer nor folder URLs return model.ErrUnsupportedURL.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (model.Result, error) {
	target, ok := api.ParseURL(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedURL, rawURL)
	}
	switch t := target.(type) {
	case *api.VideoURL:
		meta, err := e.ExtractVideo(ctx, t)
		if err != nil {
			return nil, err
		}
		return meta, nil
	case *api.FolderURL:
		listing, _, err := e.ExtractFolder(ctx, t)
		if err != nil {
			return nil, err
		}
		return listing, nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedURL, rawURL)
	}
}
