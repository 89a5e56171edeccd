package extract

import (
	"slices"

	"github.com/jmagar/panopto-cli/internal/model"
)

// noteWeights ranks renditions. A podcast usually merges speaker and screen,
// so it goes first; otherwise the shared screen beats the speaker view.
var noteWeights = map[string]int{
	model.NotePodcast:      3,
	model.NoteSharedScreen: 2,
	model.NoteSpeakerView:  1,
}

// FormatWeight returns the preference weight of a format note. Unlisted
// notes, including "unknown", weigh 0.
func FormatWeight(note string) int {
	return noteWeights[note]
}

// RankFormats returns a copy of formats sorted by descending weight.
// Ties keep discovery order.
func RankFormats(formats []model.StreamFormat) []model.StreamFormat {
	ranked := slices.Clone(formats)
	slices.SortStableFunc(ranked, func(a, b model.StreamFormat) int {
		return FormatWeight(b.FormatNote) - FormatWeight(a.FormatNote)
	})
	return ranked
}
