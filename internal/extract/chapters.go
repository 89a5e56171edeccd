package extract

import "github.com/jmagar/panopto-cli/internal/model"

// ExtractChapters pairs every timestamp with the one after it; the last
// chapter ends at duration. It returns nil, not an empty slice, when
// duration is absent or not positive, or when there are no timestamps.
func ExtractChapters(duration *float64, timestamps []model.Timestamp) []model.Chapter {
	if duration == nil || *duration <= 0 || len(timestamps) == 0 {
		return nil
	}
	total := *duration
	chapters := make([]model.Chapter, 0, len(timestamps))
	for i, cur := range timestamps {
		end := total
		if i+1 < len(timestamps) && timestamps[i+1].Time != nil {
			end = *timestamps[i+1].Time
		}
		var start float64
		if cur.Time != nil {
			start = *cur.Time
		}
		chapters = append(chapters, model.Chapter{
			StartTime: start,
			EndTime:   end,
			Title:     chapterTitle(cur),
		})
	}
	return chapters
}

func chapterTitle(ts model.Timestamp) string {
	if caption := model.StringValue(ts.Caption); caption != "" {
		return caption
	}
	return model.StringValue(ts.Data)
}
