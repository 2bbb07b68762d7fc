package provider

import (
	"crypto/tls"
	"net/http"
	"net/url"

	"github.com/oerlens/oerlens/internal/model"
)

// uaTransport stamps the configured User-Agent on every outbound request.
type uaTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// newHTTPClient builds the outbound client shared by the provider adapters.
func newHTTPClient(cfg model.HTTPConfig) *http.Client {
	transport := &http.Transport{
		Proxy: newProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &uaTransport{
			userAgent: cfg.UserAgent,
			base:      transport,
		},
	}
}

// newProxyFunc creates a proxy function from explicit configuration, falling
// back to the standard environment variables when none is given.
func newProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
