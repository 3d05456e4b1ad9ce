package backend

import "fmt"

// TransportError — сеть/таймаут: до сервера не дошли или ответ не прочитан.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("backend: transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ServerError — сервер ответил не-2xx.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend: server returned %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("backend: server returned %d", e.Status)
}
