package extract

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/jmagar/panopto-cli/internal/api"
	"github.com/jmagar/panopto-cli/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFolder serves a fixed set of pages. totals[i] is what page i reports.
type fakeFolder struct {
	name       *string
	infoErr    error
	infoCode   *int
	pages      [][]string
	totals     []int
	pageErrAt  int
	pageErr    error
	requested  []int
	pageSizes  []int
	nilResults bool
}

func (f *fakeFolder) FolderInfo(ctx context.Context, _ *api.FolderURL) (*model.FolderInfoResponse, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	resp := &model.FolderInfoResponse{Name: f.name}
	if f.infoCode != nil {
		resp.ErrorCode = f.infoCode
		resp.ErrorMessage = ptr("Unauthorized")
	}
	return resp, nil
}

func (f *fakeFolder) Sessions(ctx context.Context, _ *api.FolderURL, page, pageSize int) (*model.SessionsResponse, error) {
	f.requested = append(f.requested, page)
	f.pageSizes = append(f.pageSizes, pageSize)
	if f.pageErr != nil && page == f.pageErrAt {
		return nil, f.pageErr
	}
	if f.nilResults {
		return &model.SessionsResponse{}, nil
	}
	sp := &model.SessionsPage{}
	if page < len(f.totals) {
		sp.TotalNumber = ptr(f.totals[page])
	}
	if page < len(f.pages) {
		for _, id := range f.pages[page] {
			sp.Results = append(sp.Results, model.SessionResult{DeliveryID: id})
		}
	}
	return &model.SessionsResponse{D: sp}, nil
}

// fakeVideos returns metadata titled after the id, failing for ids in fail.
type fakeVideos struct {
	fail      map[string]error
	attempted []string
}

func (v *fakeVideos) ExtractVideo(ctx context.Context, u *api.VideoURL) (*model.VideoMetadata, error) {
	v.attempted = append(v.attempted, u.ID)
	if err := v.fail[u.ID]; err != nil {
		return nil, err
	}
	return &model.VideoMetadata{ID: u.ID, Title: "title " + u.ID}, nil
}

func ids(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + strconv.Itoa(i)
	}
	return out
}

func testFolder() *api.FolderURL {
	return &api.FolderURL{Base: "https://demo.hosted.panopto.com", ID: "folder-1"}
}

func TestAggregate_TwoPages(t *testing.T) {
	src := &fakeFolder{
		name:   ptr("Physics 101"),
		pages:  [][]string{ids("a", 100), ids("b", 50)},
		totals: []int{150, 150},
	}
	videos := &fakeVideos{}
	agg := &Aggregator{Source: src, Videos: videos, Log: zerolog.Nop()}

	listing, stats, err := agg.AggregateWithStats(context.Background(), testFolder())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, src.requested)
	assert.Equal(t, []int{api.DefaultPageSize, api.DefaultPageSize}, src.pageSizes)
	assert.Len(t, videos.attempted, 150)
	assert.Equal(t, AggregateStats{Total: 150, Pages: 2, Attempted: 150, Succeeded: 150}, stats)

	assert.Equal(t, model.PlaylistType, listing.Type)
	assert.Equal(t, "folder-1", listing.ID)
	assert.Equal(t, "Physics 101", listing.Title)
	require.Len(t, listing.Entries, 150)
	assert.Equal(t, "a0", listing.Entries[0].ID)
	assert.Equal(t, "b49", listing.Entries[149].ID)
}

func TestAggregate_FailedVideoIsSkipped(t *testing.T) {
	src := &fakeFolder{
		name:   ptr("F"),
		pages:  [][]string{{"v1", "v2", "v3"}},
		totals: []int{3},
	}
	videos := &fakeVideos{fail: map[string]error{
		"v2": &model.DeliveryError{Kind: model.KindAuthRequired, Code: 1, Message: "Unauthorized"},
	}}
	agg := &Aggregator{Source: src, Videos: videos, Log: zerolog.Nop()}

	listing, stats, err := agg.AggregateWithStats(context.Background(), testFolder())
	require.NoError(t, err)
	require.Len(t, listing.Entries, 2)
	assert.Equal(t, "v1", listing.Entries[0].ID)
	assert.Equal(t, "v3", listing.Entries[1].ID)
	assert.Equal(t, "F", listing.Title)
	assert.Equal(t, 3, stats.Attempted)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 2, stats.Succeeded)
}

func TestAggregate_FailuresCountTowardTotal(t *testing.T) {
	// Both videos on page 0 fail; attempted still reaches the total so no
	// further page is requested.
	src := &fakeFolder{
		pages:  [][]string{{"x", "y"}, {"never"}},
		totals: []int{2},
	}
	videos := &fakeVideos{fail: map[string]error{"x": errors.New("boom"), "y": errors.New("boom")}}
	agg := &Aggregator{Source: src, Videos: videos, Log: zerolog.Nop()}

	listing, err := agg.Aggregate(context.Background(), testFolder())
	require.NoError(t, err)
	assert.Empty(t, listing.Entries)
	assert.NotNil(t, listing.Entries)
	assert.Equal(t, []int{0}, src.requested)
}

func TestAggregate_TotalReadOnce(t *testing.T) {
	src := &fakeFolder{
		pages:  [][]string{{"a", "b"}, {"c", "d"}, {"e"}},
		totals: []int{4, 1000, 1000},
	}
	agg := &Aggregator{Source: src, Videos: &fakeVideos{}, Log: zerolog.Nop(), PageSize: 2}

	listing, stats, err := agg.AggregateWithStats(context.Background(), testFolder())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, src.requested)
	assert.Equal(t, 4, stats.Total)
	assert.Len(t, listing.Entries, 4)
	assert.Equal(t, []int{2, 2}, src.pageSizes)
}

func TestAggregate_EmptyFolder(t *testing.T) {
	src := &fakeFolder{name: ptr("Empty"), totals: []int{0}}
	videos := &fakeVideos{}
	agg := &Aggregator{Source: src, Videos: videos, Log: zerolog.Nop()}

	listing, err := agg.Aggregate(context.Background(), testFolder())
	require.NoError(t, err)
	assert.Empty(t, listing.Entries)
	assert.Empty(t, videos.attempted)
	assert.Equal(t, []int{0}, src.requested)
}

func TestAggregate_EmptyPageStopsWalk(t *testing.T) {
	src := &fakeFolder{
		pages:  [][]string{{"a"}, {}},
		totals: []int{10},
	}
	agg := &Aggregator{Source: src, Videos: &fakeVideos{}, Log: zerolog.Nop()}

	listing, stats, err := agg.AggregateWithStats(context.Background(), testFolder())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, src.requested)
	assert.Len(t, listing.Entries, 1)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 1, stats.Attempted)
}

func TestAggregate_TitleFallsBackToFolderID(t *testing.T) {
	src := &fakeFolder{totals: []int{0}}
	agg := &Aggregator{Source: src, Videos: &fakeVideos{}, Log: zerolog.Nop()}

	listing, err := agg.Aggregate(context.Background(), testFolder())
	require.NoError(t, err)
	assert.Equal(t, "folder-1", listing.Title)
}

func TestAggregate_FatalErrors(t *testing.T) {
	netErr := errors.New("connection reset")
	tests := []struct {
		name  string
		src   *fakeFolder
		check func(t *testing.T, err error)
	}{
		{
			name: "folder info transport error",
			src:  &fakeFolder{infoErr: netErr},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, netErr)
			},
		},
		{
			name: "folder info error envelope",
			src:  &fakeFolder{infoCode: ptr(1)},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, model.ErrAuthRequired)
			},
		},
		{
			name: "second page fails",
			src: &fakeFolder{
				pages:     [][]string{{"a"}, {"b"}},
				totals:    []int{2},
				pageErrAt: 1,
				pageErr:   netErr,
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, netErr)
				assert.Contains(t, err.Error(), "page 1")
			},
		},
		{
			name: "page without result object",
			src:  &fakeFolder{nilResults: true},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "no result object")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &Aggregator{Source: tt.src, Videos: &fakeVideos{}, Log: zerolog.Nop()}
			listing, err := agg.Aggregate(context.Background(), testFolder())
			require.Error(t, err)
			assert.Nil(t, listing)
			tt.check(t, err)
		})
	}
}

func TestAggregate_CancelledContext(t *testing.T) {
	src := &fakeFolder{pages: [][]string{{"a", "b"}}, totals: []int{2}}
	videos := &fakeVideos{}
	agg := &Aggregator{Source: src, Videos: videos, Log: zerolog.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := agg.Aggregate(ctx, testFolder())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, videos.attempted)
}

func TestAggregate_VideoURLsUseFolderBase(t *testing.T) {
	var got []string
	src := &fakeFolder{pages: [][]string{{"a"}}, totals: []int{1}}
	videos := videoFunc(func(ctx context.Context, u *api.VideoURL) (*model.VideoMetadata, error) {
		got = append(got, fmt.Sprintf("%s|%s", u.Base, u.ID))
		return &model.VideoMetadata{ID: u.ID}, nil
	})
	agg := &Aggregator{Source: src, Videos: videos, Log: zerolog.Nop()}

	_, err := agg.Aggregate(context.Background(), testFolder())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://demo.hosted.panopto.com|a"}, got)
}

type videoFunc func(ctx context.Context, u *api.VideoURL) (*model.VideoMetadata, error)

func (f videoFunc) ExtractVideo(ctx context.Context, u *api.VideoURL) (*model.VideoMetadata, error) {
	return f(ctx, u)
}
