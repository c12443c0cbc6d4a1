package core

import "fmt"

// TransportError is a network-level failure (DNS, connect, TLS, body read)
// on an outbound request. HTTP error statuses are not transport errors.
type TransportError struct {
	Op  string // GET or POST
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StageError tags an error with the pipeline stage that produced it.
type StageError struct {
	Stage string // fetch, extract, publish
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
