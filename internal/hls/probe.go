// Package hls inspects HLS master playlists behind m3u8 renditions.
package hls

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/jmagar/panopto-cli/internal/model"
	"github.com/rs/zerolog"
)

// ErrNotMaster is returned when a playlist decodes as a media playlist.
var ErrNotMaster = errors.New("expected HLS master playlist but got media playlist")

// Prober fetches master playlists and records their best variant on the
// matching format. It never reorders formats, and a failed probe leaves
// the format untouched.
type Prober struct {
	Fetcher Fetcher
	Log     zerolog.Logger
}

// Fetcher sends one GET. *api.Client satisfies it, so playlist fetches share
// the rate limiter, cookie jar and request log with the API calls.
type Fetcher interface {
	Get(ctx context.Context, label, rawURL string) (*http.Response, error)
}

// BestVariant returns the highest-bandwidth variant of the master playlist
// at manifestURL.
func (p *Prober) BestVariant(ctx context.Context, manifestURL string) (*m3u8.Variant, error) {
	resp, err := p.Fetcher.Get(ctx, "hls.playlist", manifestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	playlist, listType, err := m3u8.DecodeFrom(resp.Body, true)
	if err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}
	if listType != m3u8.MASTER {
		return nil, ErrNotMaster
	}
	master := playlist.(*m3u8.MasterPlaylist)
	if len(master.Variants) == 0 {
		return nil, errors.New("HLS master playlist has no variants")
	}
	variants := slices.Clone(master.Variants)
	slices.SortStableFunc(variants, func(a, b *m3u8.Variant) int {
		return int(b.Bandwidth) - int(a.Bandwidth)
	})
	return variants[0], nil
}

// Annotate returns a copy of formats with HLS renditions annotated.
func (p *Prober) Annotate(ctx context.Context, formats []model.StreamFormat) []model.StreamFormat {
	out := slices.Clone(formats)
	for i := range out {
		if out[i].Protocol != model.ProtocolHLS {
			continue
		}
		variant, err := p.BestVariant(ctx, out[i].URL)
		if err != nil {
			p.Log.Warn().Err(err).Str("format_id", out[i].FormatID).Msg("hls probe failed")
			continue
		}
		out[i].Bandwidth = int(variant.Bandwidth)
		out[i].Width, out[i].Height = ParseResolution(variant.Resolution)
	}
	return out
}

// AnnotateResult annotates a video or every entry of a folder listing and
// returns the annotated copy.
func (p *Prober) AnnotateResult(ctx context.Context, res model.Result) model.Result {
	switch r := res.(type) {
	case *model.VideoMetadata:
		return p.annotateVideo(ctx, r)
	case *model.FolderListing:
		cp := *r
		cp.Entries = make([]*model.VideoMetadata, len(r.Entries))
		for i, entry := range r.Entries {
			cp.Entries[i] = p.annotateVideo(ctx, entry)
		}
		return &cp
	default:
		return res
	}
}

func (p *Prober) annotateVideo(ctx context.Context, v *model.VideoMetadata) *model.VideoMetadata {
	cp := *v
	cp.Formats = p.Annotate(ctx, v.Formats)
	return &cp
}

// ParseResolution splits "1920x1080" into width and height. Malformed
// input yields zeros.
func ParseResolution(res string) (width, height int) {
	w, h, ok := strings.Cut(res, "x")
	if !ok {
		return 0, 0
	}
	width, errW := strconv.Atoi(strings.TrimSpace(w))
	height, errH := strconv.Atoi(strings.TrimSpace(h))
	if errW != nil || errH != nil {
		return 0, 0
	}
	return width, height
}
