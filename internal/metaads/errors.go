package metaads

import "fmt"

// The client surfaces a closed set of failure kinds so callers can branch
// with errors.As instead of parsing message text.

// AuthError means the access token was rejected (HTTP 401 on the identity
// endpoint). It is only produced on that path.
type AuthError struct {
	Op string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s - Invalid access token", e.Op)
}

// TransportError is a network-level failure: the request never produced a
// usable platform response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s - API connection error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is raised locally, before any request is sent.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// PlatformError is a non-2xx response from the Graph API. The platform's
// error payload carries a human-readable error_user_msg that is more
// actionable than the status line, so Error() leads with it and appends the
// raw detail; callers never have to parse the body themselves.
type PlatformError struct {
	Op          string
	StatusCode  int
	Code        int    `json:"code"`
	Subcode     int    `json:"error_subcode"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	UserMessage string `json:"error_user_msg"`
	Body        string `json:"-"`
}

func (e *PlatformError) Error() string {
	msg := fmt.Sprintf("%s - %s\n\nError Detail:\n%d %s", e.Op, e.UserMessage, e.StatusCode, e.Message)
	if e.Body != "" {
		msg += fmt.Sprintf(" - %s", e.Body)
	}
	return msg
}
