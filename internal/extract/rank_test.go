package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmagar/panopto-cli/internal/model"
)

func TestFormatWeight(t *testing.T) {
	cases := map[string]int{
		model.NotePodcast:      3,
		model.NoteSharedScreen: 2,
		model.NoteSpeakerView:  1,
		model.NoteUnknown:      0,
		"Camera1":              0,
	}
	for note, want := range cases {
		if got := FormatWeight(note); got != want {
			t.Errorf("FormatWeight(%q) = %d, want %d", note, got, want)
		}
	}
}

func TestRankFormats_StableDescending(t *testing.T) {
	in := []model.StreamFormat{
		{FormatID: "cam-a", FormatNote: "Camera A"},
		{FormatID: "spk-1", FormatNote: model.NoteSpeakerView},
		{FormatID: "cam-b", FormatNote: "Camera B"},
		{FormatID: "scr-1", FormatNote: model.NoteSharedScreen},
		{FormatID: "spk-2", FormatNote: model.NoteSpeakerView},
		{FormatID: "pod-1", FormatNote: model.NotePodcast},
		{FormatID: "unk-1", FormatNote: model.NoteUnknown},
	}
	orig := append([]model.StreamFormat(nil), in...)

	got := RankFormats(in)
	ids := make([]string, len(got))
	for i, f := range got {
		ids[i] = f.FormatID
	}
	want := []string{"pod-1", "scr-1", "spk-1", "spk-2", "cam-a", "cam-b", "unk-1"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Fatalf("input was modified (-want +got):\n%s", diff)
	}
}

func TestRankFormats_Empty(t *testing.T) {
	if got := RankFormats(nil); len(got) != 0 {
		t.Fatalf("RankFormats(nil) = %v", got)
	}
}
