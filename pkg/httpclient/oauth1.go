package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/garyburd/go-oauth/oauth"
)

// Credentials is an OAuth1 key/secret pair.
type Credentials struct {
	Key    string
	Secret string
}

// OAuth1Signer signs requests with a consumer and a pre-issued access token
// (two-legged OAuth1, HMAC-SHA1). No token exchange is ever performed.
type OAuth1Signer struct {
	client oauth.Client
	token  oauth.Credentials
}

// NewOAuth1Signer prepares signing material only; nothing is validated or fetched.
func NewOAuth1Signer(consumer, token Credentials) *OAuth1Signer {
	return &OAuth1Signer{
		client: oauth.Client{
			Credentials: oauth.Credentials{Token: consumer.Key, Secret: consumer.Secret},
		},
		token: oauth.Credentials{Token: token.Key, Secret: token.Secret},
	}
}

// Sign sets the OAuth Authorization header on r. Query parameters and
// form-encoded body fields are part of the signature base string.
func (s *OAuth1Signer) Sign(r *http.Request) error {
	form, err := formParams(r)
	if err != nil {
		return fmt.Errorf("read form body: %w", err)
	}
	if err := s.client.SetAuthorizationHeader(r.Header, &s.token, r.Method, r.URL, form); err != nil {
		return fmt.Errorf("oauth1 sign: %w", err)
	}
	return nil
}

// formParams returns the parsed body of a form-encoded request and rewinds the body.
func formParams(r *http.Request) (url.Values, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "application/x-www-form-urlencoded" {
		return nil, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(raw)), nil
	}
	return url.ParseQuery(string(raw))
}
