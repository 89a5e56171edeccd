package model

// Format notes assigned by the delivery normalizer.
const (
	NotePodcast      = "podcast"
	NoteSharedScreen = "shared-screen"
	NoteSpeakerView  = "speaker-view"
	NoteUnknown      = "unknown"
)

// ProtocolHLS marks renditions served as HLS playlists.
const ProtocolHLS = "m3u8"

// PlaylistType is the "type" value of a serialized FolderListing.
const PlaylistType = "playlist"

// VideoMetadata describes one session and the streams it can be played from.
// Formats are always ordered by preference, best first.
type VideoMetadata struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Creator     *string        `json:"creator,omitempty"`
	Duration    *float64       `json:"duration,omitempty"`
	Formats     []StreamFormat `json:"formats"`
	Chapters    []Chapter      `json:"chapters,omitempty"`
}

// StreamFormat is a single playable rendition.
type StreamFormat struct {
	FormatID   string `json:"format_id"`
	URL        string `json:"url"`
	Ext        string `json:"ext,omitempty"`
	FormatNote string `json:"format_note"`
	Protocol   string `json:"protocol,omitempty"`

	// Filled in by the HLS probe for m3u8 renditions.
	Width     int `json:"width,omitempty"`
	Height    int `json:"height,omitempty"`
	Bandwidth int `json:"tbr,omitempty"`
}

// Chapter is a titled interval, in the same unit as the session duration.
type Chapter struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Title     string  `json:"title,omitempty"`
}

// FolderListing is a folder rendered as a playlist of successfully
// extracted sessions, in fetch order.
type FolderListing struct {
	Type    string           `json:"type"`
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Entries []*VideoMetadata `json:"entries"`
}

// Result is what extraction of one URL produces: *VideoMetadata or *FolderListing.
type Result interface {
	ResultID() string
}

// ResultID returns the session identifier.
func (v *VideoMetadata) ResultID() string { return v.ID }

// ResultID returns the folder identifier.
func (f *FolderListing) ResultID() string { return f.ID }

// Config holds the user's configuration. It is loaded from a file and the
// environment, then overridden by CLI flags.
type Config struct {
	UserAgent         string  `json:"userAgent" yaml:"userAgent" env:"PANOPTO_USER_AGENT" env-default:"Mozilla/5.0 (X11; Linux x86_64) panopto-cli" validate:"required"`
	TimeoutSeconds    int     `json:"timeoutSeconds" yaml:"timeoutSeconds" env:"PANOPTO_TIMEOUT" env-default:"30" validate:"min=1,max=600"`
	RateLimit         float64 `json:"rateLimit" yaml:"rateLimit" env:"PANOPTO_RATE_LIMIT" env-default:"5" validate:"gt=0"`
	RateBurst         int     `json:"rateBurst" yaml:"rateBurst" env:"PANOPTO_RATE_BURST" env-default:"10" validate:"min=1"`
	DegradedThreshold int     `json:"degradedThreshold" yaml:"degradedThreshold" env:"PANOPTO_DEGRADED_THRESHOLD" env-default:"5" validate:"min=1"`
	LogLevel          string  `json:"logLevel" yaml:"logLevel" env:"PANOPTO_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	APILogPath        string  `json:"apiLogPath,omitempty" yaml:"apiLogPath" env:"PANOPTO_API_LOG"`
	ProbeHLS          bool    `json:"probeHLS,omitempty" yaml:"probeHLS" env:"PANOPTO_PROBE_HLS"`

	// Resolved at startup, never read from file.
	Urls       []string `json:"-" yaml:"-"`
	JSONOutput bool     `json:"-" yaml:"-"`
	OutputPath string   `json:"-" yaml:"-"`
}

// Args holds CLI arguments parsed by go-arg.
type Args struct {
	Urls       []string `arg:"positional,required" help:"Panopto viewer or folder URLs, or .txt files with one URL per line."`
	ConfigPath string   `arg:"--config" help:"Path to a JSON or YAML config file."`
	JSON       bool     `arg:"--json" help:"Print extracted metadata as JSON."`
	OutPath    string   `arg:"-o,--output" help:"Write extracted metadata as JSON to this file."`
	ProbeHLS   bool     `arg:"--probe-hls" help:"Fetch HLS master playlists to annotate formats with resolution and bandwidth."`
	LogLevel   string   `arg:"--log-level" help:"Log level: debug, info, warn or error."`
	APILog     string   `arg:"--api-log" help:"Append a JSON line per API request to this file."`
	Timeout    int      `arg:"--timeout" default:"-1" help:"HTTP timeout in seconds."`
}

// Description provides the help header for go-arg.
func (Args) Description() string {
	return "Extract playable-video metadata and folder listings from Panopto.\n"
}
