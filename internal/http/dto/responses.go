package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type SessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

// SettingsResponse never echoes the access token back; only its presence.
type SettingsResponse struct {
	MetaTokenSet bool    `json:"meta_token_set"`
	PageID       string  `json:"page_id,omitempty"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
}

type CheckAccessResponse struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}
