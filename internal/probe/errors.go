package probe

import "fmt"

// TransportError means the request could not be completed: bad URL,
// refused connection, failed name resolution, timeout.
type TransportError struct {
	URL      string
	DNSClass string // empty when DNS diagnosis is off
	Err      error
}

func (e *TransportError) Error() string {
	if e.DNSClass != "" {
		return fmt.Sprintf("probe %s: transport: %v (dns=%s)", e.URL, e.Err, e.DNSClass)
	}
	return fmt.Sprintf("probe %s: transport: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means a response arrived but its body is not one JSON value.
type DecodeError struct {
	URL        string
	StatusCode int
	Snippet    string // leading bytes of the body
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("probe %s: decode response (status %d, body %q): %v", e.URL, e.StatusCode, e.Snippet, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const maxSnippet = 64

func snippet(b []byte) string {
	if len(b) > maxSnippet {
		return string(b[:maxSnippet]) + "..."
	}
	return string(b)
}
