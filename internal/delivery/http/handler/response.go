package handler

// ErrorResponse is the error body every endpoint returns
type ErrorResponse struct {
	Error string `json:"error"`
}
