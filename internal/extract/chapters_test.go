package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmagar/panopto-cli/internal/model"
)

func TestExtractChapters(t *testing.T) {
	timestamps := []model.Timestamp{
		{Time: ptr(0.0), Data: ptr("Intro")},
		{Time: ptr(300.0), Data: ptr("Part A")},
		{Time: ptr(900.0), Data: ptr("Part B")},
	}
	got := ExtractChapters(ptr(1200.0), timestamps)
	want := []model.Chapter{
		{StartTime: 0, EndTime: 300, Title: "Intro"},
		{StartTime: 300, EndTime: 900, Title: "Part A"},
		{StartTime: 900, EndTime: 1200, Title: "Part B"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chapters mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractChapters_Absent(t *testing.T) {
	ts := []model.Timestamp{{Time: ptr(0.0), Data: ptr("Intro")}}
	cases := map[string]struct {
		duration   *float64
		timestamps []model.Timestamp
	}{
		"nil duration":      {nil, ts},
		"zero duration":     {ptr(0.0), ts},
		"negative duration": {ptr(-5.0), ts},
		"no timestamps":     {ptr(100.0), nil},
		"empty timestamps":  {ptr(100.0), []model.Timestamp{}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := ExtractChapters(tc.duration, tc.timestamps); got != nil {
				t.Fatalf("ExtractChapters = %#v, want nil", got)
			}
		})
	}
}

func TestExtractChapters_SingleTimestampEndsAtDuration(t *testing.T) {
	got := ExtractChapters(ptr(60.0), []model.Timestamp{{Time: ptr(12.5), Data: ptr("Only")}})
	want := []model.Chapter{{StartTime: 12.5, EndTime: 60, Title: "Only"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chapters mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractChapters_CaptionPreferredOverData(t *testing.T) {
	got := ExtractChapters(ptr(10.0), []model.Timestamp{
		{Time: ptr(0.0), Caption: ptr("Caption title"), Data: ptr("data title")},
		{Time: ptr(5.0), Caption: ptr(""), Data: ptr("fallback")},
	})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Caption title" || got[1].Title != "fallback" {
		t.Fatalf("titles = %q, %q", got[0].Title, got[1].Title)
	}
}

func TestExtractChapters_MissingTimes(t *testing.T) {
	got := ExtractChapters(ptr(50.0), []model.Timestamp{
		{Data: ptr("no start")},
		{Data: ptr("no start either")},
	})
	want := []model.Chapter{
		{StartTime: 0, EndTime: 50, Title: "no start"},
		{StartTime: 0, EndTime: 50, Title: "no start either"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chapters mismatch (-want +got):\n%s", diff)
	}
}
