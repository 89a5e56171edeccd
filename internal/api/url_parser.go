package api

import (
	"net/url"
	"regexp"
	"strings"
)

// Endpoint paths, relative to a Panopto base address.
const (
	ViewerPath       = "/Panopto/Pages/Viewer.aspx"
	FolderListPath   = "/Panopto/Pages/Sessions/List.aspx"
	DeliveryInfoPath = "/Panopto/Pages/Viewer/DeliveryInfo.aspx"
	FolderInfoPath   = "/Panopto/Services/Data.svc/GetFolderInfo"
	SessionsPath     = "/Panopto/Services/Data.svc/GetSessions"
)

var (
	viewerRegex = regexp.MustCompile(`^(?P<base>https?://.+?)/Panopto/Pages/Viewer\.aspx\?(?:.*&)?id=(?P<id>[\w-]+)`)
	folderRegex = regexp.MustCompile(`^(?P<base>https?://.+?)/Panopto/Pages/Sessions/List\.aspx(?:\?[^#]*)?#(?:.*&)?folderID=(?:%22|")(?P<id>[\w-]+)(?:%22|")`)
)

// Target is a recognized Panopto URL: either a *VideoURL or a *FolderURL.
type Target interface {
	BaseURL() string
	TargetID() string
	isTarget()
}

// VideoURL points at a single session in the viewer.
type VideoURL struct {
	Base string
	ID   string
}

// FolderURL points at a folder's session list.
type FolderURL struct {
	Base string
	ID   string
}

func (v *VideoURL) BaseURL() string  { return v.Base }
func (v *VideoURL) TargetID() string { return v.ID }
func (*VideoURL) isTarget()          {}

func (f *FolderURL) BaseURL() string  { return f.Base }
func (f *FolderURL) TargetID() string { return f.ID }
func (*FolderURL) isTarget()          {}

// DeliveryInfoURL returns the endpoint describing this session's streams.
func (v *VideoURL) DeliveryInfoURL() string {
	return joinBase(v.Base, DeliveryInfoPath)
}

// FolderInfoURL returns the endpoint describing this folder.
func (f *FolderURL) FolderInfoURL() string {
	return joinBase(f.Base, FolderInfoPath)
}

// SessionsURL returns the endpoint listing this folder's sessions.
func (f *FolderURL) SessionsURL() string {
	return joinBase(f.Base, SessionsPath)
}

// ViewerURL returns the browser URL for a session hosted at base.
func ViewerURL(base, id string) string {
	return joinBase(base, ViewerPath) + "?id=" + url.QueryEscape(id)
}

func joinBase(base, path string) string {
	return strings.TrimSuffix(base, "/") + path
}

// ParseURL matches raw against the viewer and folder URL shapes.
// The boolean is false when neither applies; callers route such URLs elsewhere.
func ParseURL(raw string) (Target, bool) {
	raw = strings.TrimSpace(raw)
	if m := viewerRegex.FindStringSubmatch(raw); m != nil {
		return &VideoURL{
			Base: m[viewerRegex.SubexpIndex("base")],
			ID:   m[viewerRegex.SubexpIndex("id")],
		}, true
	}
	if m := folderRegex.FindStringSubmatch(raw); m != nil {
		return &FolderURL{
			Base: m[folderRegex.SubexpIndex("base")],
			ID:   m[folderRegex.SubexpIndex("id")],
		}, true
	}
	return nil, false
}
