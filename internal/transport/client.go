package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

const defaultTimeout = 30 * time.Second

// Client is the production Transport: XML-RPC calls go through a shared
// codec client, raw Post/Get through a tuned HTTP client.
type Client struct {
	handler   Handler
	rpc       *xmlrpc.Client
	http      *http.Client
	userAgent string
}

// New creates a Transport for one endpoint. The handler receives all
// completions; a zero timeout selects the default.
func New(endpoint, userAgent string, timeout time.Duration, handler Handler) (*Client, error) {
	if timeout == 0 {
		timeout = defaultTimeout
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  false,
	}

	wrapped := &headerRoundTripper{base: base, userAgent: userAgent}

	rpc, err := xmlrpc.NewClient(endpoint, wrapped)

	if err != nil {
		return nil, fmt.Errorf("could not create XML-RPC client for %s: %w", endpoint, err)
	}

	return &Client{
		handler: handler,
		rpc:     rpc,
		http: &http.Client{
			Transport: wrapped,
			Timeout:   timeout,
		},
		userAgent: userAgent,
	}, nil
}

// Call invokes an XML-RPC method asynchronously. Server faults and network
// errors both surface through the Failure callback.
func (c *Client) Call(token uint64, method string, args []any) {
	go func() {
		var result any

		err := c.rpc.Call(method, args, &result)

		if err != nil {
			var fault xmlrpc.FaultError

			if errors.As(err, &fault) {
				c.handler.Failure(token, fault.Code, fault.String)
				return
			}

			c.handler.Failure(token, 0, err.Error())
			return
		}

		c.handler.Success(token, result)
	}()
}

// Post sends a raw body and delivers the raw response body.
func (c *Client) Post(token uint64, url string, body []byte, headers map[string]string) {
	go func() {
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))

		if err != nil {
			c.handler.Failure(token, 0, err.Error())
			return
		}

		for name, value := range headers {
			req.Header.Set(name, value)
		}

		c.do(token, req)
	}()
}

// Get fetches a URL and delivers the raw response body.
func (c *Client) Get(token uint64, url string) {
	go func() {
		req, err := http.NewRequest(http.MethodGet, url, nil)

		if err != nil {
			c.handler.Failure(token, 0, err.Error())
			return
		}

		c.do(token, req)
	}()
}

func (c *Client) do(token uint64, req *http.Request) {
	res, err := c.http.Do(req)

	if err != nil {
		c.handler.Failure(token, 0, err.Error())
		return
	}

	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)

	if err != nil {
		c.handler.Failure(token, 0, err.Error())
		return
	}

	if res.StatusCode >= http.StatusBadRequest {
		c.handler.Failure(token, res.StatusCode, res.Status)
		return
	}

	c.handler.Success(token, data)
}

// headerRoundTripper stamps the user agent on every outgoing request,
// including those issued by the XML-RPC codec.
type headerRoundTripper struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	return t.base.RoundTrip(req)
}
