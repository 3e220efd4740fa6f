package services

// RequestError carries the HTTP status a service-level failure should map
// to. Anything else surfaces as a 500 with a generic message.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func BadRequest(message string) error {
	return &RequestError{Status: 400, Message: message}
}

func NotFound(message string) error {
	return &RequestError{Status: 404, Message: message}
}
