package serverutils

// ErrorResponse is the wire shape of every failed request: a short message
// plus an optional detail string.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
