package models

// FileDescriptor is the normalized record of an uploaded file. Exactly one of
// URL (out-of-band storage) and Data (inline base64) is set.
type FileDescriptor struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
	Data string `json:"data,omitempty"`
}
