package http

import "net/http"

type authTransport struct {
	header    string
	value     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.value == "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set(t.header, t.value)

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sends the token as an "Authorization: Bearer" header.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return WithAPIKeyHeader("Authorization", "")
	}
	return WithAPIKeyHeader("Authorization", "Bearer "+token)
}

// WithAPIKeyHeader sends a raw credential under a custom header, e.g. X-API-Key.
func WithAPIKeyHeader(header, value string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			header:    header,
			value:     value,
			transport: rt,
		}
	})
}
