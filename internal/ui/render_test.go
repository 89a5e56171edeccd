package ui

import (
	"strings"
	"testing"

	"github.com/jmagar/panopto-cli/internal/model"
	"github.com/jmagar/panopto-cli/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{
		0:      "0:00",
		59.6:   "1:00",
		75:     "1:15",
		3600:   "1:00:00",
		3725.2: "1:02:05",
		-1:     "-",
	}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatBandwidth(t *testing.T) {
	if got := FormatBandwidth(0); got != "-" {
		t.Fatalf("FormatBandwidth(0) = %q", got)
	}
	if got := FormatBandwidth(2500000); got != "2.5 Mbps" {
		t.Fatalf("FormatBandwidth(2500000) = %q, want 2.5 Mbps", got)
	}
}

func TestRenderVideo(t *testing.T) {
	buf := testutil.CaptureWriter(t, &Out)

	RenderVideo(&model.VideoMetadata{
		ID:       "vid-1",
		Title:    "Physics -> Lecture 1",
		Creator:  ptr("Dr. Smith"),
		Duration: ptr(60.0),
		Formats: []model.StreamFormat{
			{FormatID: "podcast-0", URL: "https://cdn/p.mp4", FormatNote: model.NotePodcast},
		},
		Chapters: []model.Chapter{
			{StartTime: 0, EndTime: 30, Title: "Intro"},
			{StartTime: 30, EndTime: 60, Title: "Body"},
		},
	})

	out := StripAnsiCodes(buf.String())
	for _, want := range []string{
		"Physics -> Lecture 1",
		"vid-1",
		"Dr. Smith",
		"Duration:",
		"1:00",
		"Formats",
		"Chapters (2)",
		"0:00 - 0:30  Intro",
		"0:30 - 1:00  Body",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Description:") {
		t.Errorf("absent description should not be printed:\n%s", out)
	}
}

func TestRenderListing(t *testing.T) {
	buf := testutil.CaptureWriter(t, &Out)

	RenderResult(&model.FolderListing{
		Type:  model.PlaylistType,
		ID:    "fold-1",
		Title: "Physics 101",
		Entries: []*model.VideoMetadata{
			{ID: "a", Title: "Intro", Formats: []model.StreamFormat{{FormatNote: model.NotePodcast}}},
		},
	})

	out := StripAnsiCodes(buf.String())
	for _, want := range []string{"Physics 101", "fold-1", "Videos:", "1st", "Intro"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderListing_Empty(t *testing.T) {
	buf := testutil.CaptureWriter(t, &Out)

	RenderListing(&model.FolderListing{Type: model.PlaylistType, ID: "f", Title: "Empty", Entries: []*model.VideoMetadata{}})

	out := StripAnsiCodes(buf.String())
	if !strings.Contains(out, "No videos could be extracted") {
		t.Fatalf("expected empty-folder notice:\n%s", out)
	}
}

func TestPrintErrorCountsAndUsesErrOut(t *testing.T) {
	errBuf := testutil.CaptureWriter(t, &ErrOut)
	outBuf := testutil.CaptureWriter(t, &Out)
	before := RunErrorCount

	PrintError("boom")

	if RunErrorCount != before+1 {
		t.Fatalf("RunErrorCount = %d, want %d", RunErrorCount, before+1)
	}
	if !strings.Contains(errBuf.String(), "boom") {
		t.Fatalf("error not written to ErrOut: %q", errBuf.String())
	}
	if outBuf.Len() != 0 {
		t.Fatalf("error leaked to Out: %q", outBuf.String())
	}
}
