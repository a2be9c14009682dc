package handler

// errorResponse is the error envelope returned by the auth routes and the
// central error handler.
type errorResponse struct {
	Error string `json:"error"`
}
