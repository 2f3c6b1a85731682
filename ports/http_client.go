package ports

import (
	"net/http"
)

// HTTPClient is the transport capability the gateway client consumes.
// Implementations must be safe for concurrent use; the library never
// retries, so one Do call corresponds to exactly one gateway attempt.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
