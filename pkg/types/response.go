package types

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type SuccessEnvelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type APIError struct {
	Code    string   `json:"code"`
	Details any      `json:"details,omitempty"`
	Stack   []string `json:"stack,omitempty"`
}

type ErrorEnvelope struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Error   *APIError `json:"error,omitempty"`
}
