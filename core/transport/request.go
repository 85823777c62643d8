package transport

import (
	"net/http"
	"net/url"
)

// Request describes one outbound API call. The body is kept as a value and
// marshaled per dispatch, so the interceptor can replay the request without
// re-reading a consumed stream.
//
// A Request is single-use: its replay bookkeeping belongs to one Do call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Body is JSON-marshaled when non-nil.
	Body any

	// retried marks that the request has already been replayed once after a
	// credential renewal. A second authentication failure is final.
	retried bool
}
