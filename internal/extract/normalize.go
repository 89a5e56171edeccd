package extract

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jmagar/panopto-cli/internal/model"
)

const titleSeparator = " -> "

// NormalizeDelivery turns one raw Delivery into ranked video metadata.
// videoID is the requested identifier; it is the last-resort title.
func NormalizeDelivery(d *model.Delivery, videoID string) (*model.VideoMetadata, error) {
	if d == nil {
		return nil, fmt.Errorf("%s: %w", videoID, model.ErrMissingDelivery)
	}
	formats := collectFormats(d)
	if len(formats) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, model.ErrNoPlayableFormats)
	}
	return &model.VideoMetadata{
		ID:          videoID,
		Title:       deliveryTitle(d, videoID),
		Description: d.SessionAbstract,
		Creator:     d.OwnerDisplayName,
		Duration:    d.Duration,
		Formats:     RankFormats(formats),
		Chapters:    ExtractChapters(d.Duration, d.Timestamps),
	}, nil
}

func deliveryTitle(d *model.Delivery, videoID string) string {
	var parts []string
	for _, p := range []*string{d.SessionGroupLongName, d.SessionName} {
		if s := model.StringValue(p); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, titleSeparator)
	}
	if id := model.StringValue(d.PublicID); id != "" {
		return id
	}
	return videoID
}

// collectFormats walks podcast streams, then generic streams, in discovery order.
func collectFormats(d *model.Delivery) []model.StreamFormat {
	var formats []model.StreamFormat
	for _, podcast := range d.PodcastStreams {
		streamURL := model.StringValue(podcast.StreamURL)
		if streamURL == "" {
			continue
		}
		formats = append(formats, newFormat(len(formats), streamURL, "", model.NotePodcast))
	}
	for _, stream := range d.Streams {
		streamURL := model.StringValue(stream.StreamURL)
		if streamURL == "" {
			continue
		}
		ext, note := classifyStreamName(model.StringValue(stream.Name))
		formats = append(formats, newFormat(len(formats), streamURL, ext, note))
	}
	return formats
}

// classifyStreamName splits "Speaker view.mp4" into an extension and a
// format note. Names without a dot keep their raw text as the note; a name
// such as ".mp4" yields an empty note.
func classifyStreamName(name string) (ext, note string) {
	if name == "" {
		return "", model.NoteUnknown
	}
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return "", name
	}
	filename, ext := name[:dot], name[dot+1:]
	switch {
	case strings.Contains(filename, "Shared screen"):
		return ext, model.NoteSharedScreen
	case strings.Contains(filename, "Speaker view"):
		return ext, model.NoteSpeakerView
	default:
		return ext, filename
	}
}

func newFormat(index int, streamURL, ext, note string) model.StreamFormat {
	return model.StreamFormat{
		FormatID:   formatID(note, index),
		URL:        streamURL,
		Ext:        ext,
		FormatNote: note,
		Protocol:   streamProtocol(streamURL),
	}
}

func formatID(note string, index int) string {
	slug := strings.Trim(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, note), "-")
	if slug == "" {
		slug = model.NoteUnknown
	}
	return slug + "-" + strconv.Itoa(index)
}

func streamProtocol(streamURL string) string {
	u, err := url.Parse(streamURL)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(strings.ToLower(u.Path), ".m3u8") {
		return model.ProtocolHLS
	}
	return strings.ToLower(u.Scheme)
}
