package model

// Raw Panopto response shapes. Pointer fields distinguish an absent key
// from a present-but-empty one; chapter and title derivation depend on it.

// ErrorFields is the error envelope Panopto embeds in any JSON response.
type ErrorFields struct {
	ErrorCode    *int    `json:"ErrorCode,omitempty"`
	ErrorMessage *string `json:"ErrorMessage,omitempty"`
}

// DeliveryInfoResponse is returned by Viewer/DeliveryInfo.aspx.
type DeliveryInfoResponse struct {
	ErrorFields
	Delivery *Delivery `json:"Delivery,omitempty"`
}

// Delivery describes one recorded session and its playable streams.
type Delivery struct {
	SessionGroupLongName *string          `json:"SessionGroupLongName,omitempty"`
	SessionName          *string          `json:"SessionName,omitempty"`
	PublicID             *string          `json:"PublicID,omitempty"`
	SessionAbstract      *string          `json:"SessionAbstract,omitempty"`
	OwnerDisplayName     *string          `json:"OwnerDisplayName,omitempty"`
	Duration             *float64         `json:"Duration,omitempty"`
	PodcastStreams       []DeliveryStream `json:"PodcastStreams,omitempty"`
	Streams              []DeliveryStream `json:"Streams,omitempty"`
	Timestamps           []Timestamp      `json:"Timestamps,omitempty"`
}

// DeliveryStream is a single rendition entry from PodcastStreams or Streams.
type DeliveryStream struct {
	StreamURL *string `json:"StreamUrl,omitempty"`
	Name      *string `json:"Name,omitempty"`
}

// Timestamp is a timed event inside a session, used to derive chapters.
type Timestamp struct {
	Time    *float64 `json:"Time,omitempty"`
	Caption *string  `json:"Caption,omitempty"`
	Data    *string  `json:"Data,omitempty"`
}

// FolderInfoResponse is returned by Data.svc/GetFolderInfo.
type FolderInfoResponse struct {
	ErrorFields
	Name *string `json:"Name,omitempty"`
}

// SessionsResponse is returned by Data.svc/GetSessions.
type SessionsResponse struct {
	ErrorFields
	D *SessionsPage `json:"d,omitempty"`
}

// SessionsPage holds one page of folder sessions.
type SessionsPage struct {
	TotalNumber *int            `json:"TotalNumber,omitempty"`
	Results     []SessionResult `json:"Results,omitempty"`
}

// SessionResult is one session row; only the delivery ID is consumed.
type SessionResult struct {
	DeliveryID  string  `json:"DeliveryID"`
	SessionName *string `json:"SessionName,omitempty"`
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
