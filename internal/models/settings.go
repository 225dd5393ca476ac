package models

// SessionSettings are the per-session credentials and generation knobs.
// They live in the session store for the session's lifetime only; defaults
// come from service configuration.
type SessionSettings struct {
	MetaAccessToken string  `json:"meta_access_token,omitempty"`
	PageID          string  `json:"page_id,omitempty"`
	Model           string  `json:"model,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

// Merge overlays non-zero fields of other onto s.
func (s *SessionSettings) Merge(other SessionSettings) {
	if other.MetaAccessToken != "" {
		s.MetaAccessToken = other.MetaAccessToken
	}
	if other.PageID != "" {
		s.PageID = other.PageID
	}
	if other.Model != "" {
		s.Model = other.Model
	}
	if other.Temperature != 0 {
		s.Temperature = other.Temperature
	}
}
