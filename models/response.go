package models

// Response is the uniform JSON envelope returned by every handler.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds an error envelope.
func Fail(err string) Response {
	return Response{Success: false, Error: err}
}
