package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jmagar/panopto-cli/internal/model"
)

// FormatSeconds renders a duration in seconds as h:mm:ss or m:ss.
func FormatSeconds(sec float64) string {
	if sec < 0 || math.IsNaN(sec) {
		return "-"
	}
	total := int64(math.Round(sec))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatBandwidth renders bits per second with an SI prefix, e.g. "2.5 Mbps".
func FormatBandwidth(bps int) string {
	if bps <= 0 {
		return "-"
	}
	return humanize.SIWithDigits(float64(bps), 1, "bps")
}

func formatResolution(f model.StreamFormat) string {
	if f.Width == 0 || f.Height == 0 {
		return "-"
	}
	return strconv.Itoa(f.Width) + "x" + strconv.Itoa(f.Height)
}

// RenderResult renders a video or a folder listing.
func RenderResult(res model.Result) {
	switch r := res.(type) {
	case *model.VideoMetadata:
		RenderVideo(r)
	case *model.FolderListing:
		RenderListing(r)
	}
}

// RenderVideo prints one session's metadata, formats and chapters.
func RenderVideo(v *model.VideoMetadata) {
	PrintHeader(SymbolVideo + " " + v.Title)
	PrintKeyValue("ID", v.ID, "")
	if v.Creator != nil {
		PrintKeyValue("Creator", *v.Creator, "")
	}
	if v.Duration != nil {
		PrintKeyValue("Duration", FormatSeconds(*v.Duration), "")
	}
	if v.Description != nil && *v.Description != "" {
		PrintKeyValue("Description", *v.Description, "")
	}

	PrintSection("Formats")
	table := NewTable([]TableColumn{
		{Header: "ID", Width: 18},
		{Header: "Note", Width: 16},
		{Header: "Ext", Width: 5},
		{Header: "Res", Width: 10, Align: "right"},
		{Header: "Bitrate", Width: 10, Align: "right"},
		{Header: "URL", Width: 40},
	})
	for _, f := range v.Formats {
		ext := f.Ext
		if ext == "" {
			ext = "-"
		}
		table.AddRow(f.FormatID, f.FormatNote, ext, formatResolution(f), FormatBandwidth(f.Bandwidth), f.URL)
	}
	table.Print()

	if len(v.Chapters) > 0 {
		PrintSection("Chapters (" + humanize.Comma(int64(len(v.Chapters))) + ")")
		for _, c := range v.Chapters {
			fmt.Fprintf(Out, "  %s %s%s - %s%s  %s\n", BulletCircle, ColorCyan, FormatSeconds(c.StartTime), FormatSeconds(c.EndTime), ColorReset, c.Title)
		}
	}
}

// RenderListing prints a folder playlist as a table of its entries.
func RenderListing(l *model.FolderListing) {
	PrintHeader(SymbolFolder + " " + l.Title)
	PrintKeyValue("Folder ID", l.ID, "")
	PrintKeyValue("Videos", humanize.Comma(int64(len(l.Entries))), ColorGreen)

	if len(l.Entries) == 0 {
		fmt.Fprintln(Out)
		PrintInfo("No videos could be extracted from this folder")
		return
	}
	table := NewTable([]TableColumn{
		{Header: "#", Width: 6, Align: "right"},
		{Header: "Title", Width: 44},
		{Header: "Duration", Width: 9, Align: "right"},
		{Header: "Best format", Width: 16},
		{Header: "ID", Width: 36},
	})
	for i, entry := range l.Entries {
		duration := "-"
		if entry.Duration != nil {
			duration = FormatSeconds(*entry.Duration)
		}
		best := "-"
		if len(entry.Formats) > 0 {
			best = entry.Formats[0].FormatNote
		}
		table.AddRow(humanize.Ordinal(i+1), entry.Title, duration, best, entry.ID)
	}
	fmt.Fprintln(Out)
	table.Print()
}
