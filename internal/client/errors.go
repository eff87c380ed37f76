package client

import "fmt"

// NetworkError means the request never produced a response
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Payload holds the response body, if any.
type ServerError struct {
	Op         string
	StatusCode int
	Payload    string
}

func (e *ServerError) Error() string {
	if e.Payload == "" {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server returned status %d: %s", e.Op, e.StatusCode, e.Payload)
}

// DataShapeError is a response body the client could not interpret
type DataShapeError struct {
	Op   string
	Body string
	Err  error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %v", e.Op, e.Err)
}

func (e *DataShapeError) Unwrap() error { return e.Err }
