// Package transport performs the actual network I/O for the dialect
// clients. Calls are fire-and-forget: the caller allocates a correlation
// token, issues the call and later receives exactly one Success or Failure
// callback carrying that token.
package transport

// Handler receives asynchronous completions. Success payloads are the
// decoded XML-RPC response value for Call and the raw response body for
// Post and Get.
type Handler interface {
	Success(token uint64, payload any)
	Failure(token uint64, code int, message string)
}

// Transport issues network calls. Implementations deliver every completion
// on their own goroutine; callers must serialize their own state.
type Transport interface {
	// Call invokes an XML-RPC method with positional arguments.
	Call(token uint64, method string, args []any)

	// Post sends a raw HTTP POST body with extra headers.
	Post(token uint64, url string, body []byte, headers map[string]string)

	// Get fetches a URL.
	Get(token uint64, url string)
}
