package sms

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client sends pattern SMS messages through the payamak-panel SOAP gateway.
// SendByBaseNumber expects the numeric body id of a pre-approved template and
// returns a positive receipt id on success.
type Client struct {
	endpoint   string
	username   string
	password   string
	httpClient *http.Client
}

// Options configures the SOAP client.
type Options struct {
	Endpoint string
	Username string
	Password string
	Timeout  time.Duration
}

// NewClient creates a gateway client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimSpace(opts.Endpoint),
		username:   opts.Username,
		password:   opts.Password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type soapEnvelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	XMLNSs  string   `xml:"xmlns:soap,attr"`
	XMLNSd  string   `xml:"xmlns:xsd,attr"`
	XMLNSi  string   `xml:"xmlns:xsi,attr"`
	Body    soapBody `xml:"soap:Body"`
}

type soapBody struct {
	Request sendByBaseNumberRequest `xml:"SendByBaseNumber2"`
}

type sendByBaseNumberRequest struct {
	XMLNS    string `xml:"xmlns,attr"`
	Username string `xml:"username"`
	Password string `xml:"password"`
	Text     string `xml:"text"`
	To       string `xml:"to"`
	BodyID   int64  `xml:"bodyId"`
}

type soapResponseEnvelope struct {
	Body struct {
		Response struct {
			Result string `xml:"SendByBaseNumber2Result"`
		} `xml:"SendByBaseNumber2Response"`
	} `xml:"Body"`
}

// SendByBaseNumber submits a template SMS. text carries the template
// arguments joined by semicolons; the gateway substitutes them into the
// body id's approved pattern.
func (c *Client) SendByBaseNumber(ctx context.Context, text, to string, bodyID int64) (int64, error) {
	if c.endpoint == "" {
		return 0, fmt.Errorf("sms: endpoint not configured")
	}

	envelope := soapEnvelope{
		XMLNSs: "http://schemas.xmlsoap.org/soap/envelope/",
		XMLNSd: "http://www.w3.org/2001/XMLSchema",
		XMLNSi: "http://www.w3.org/2001/XMLSchema-instance",
		Body: soapBody{
			Request: sendByBaseNumberRequest{
				XMLNS:    "http://tempuri.org/",
				Username: c.username,
				Password: c.password,
				Text:     text,
				To:       to,
				BodyID:   bodyID,
			},
		},
	}

	payload, err := xml.Marshal(envelope)
	if err != nil {
		return 0, fmt.Errorf("sms: marshal request: %w", err)
	}
	body := append([]byte(xml.Header), payload...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("sms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://tempuri.org/SendByBaseNumber2")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sms: gateway request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return 0, fmt.Errorf("sms: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("sms: gateway status %d", resp.StatusCode)
	}

	var parsed soapResponseEnvelope
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return 0, fmt.Errorf("sms: parse response: %w", err)
	}

	result := strings.TrimSpace(parsed.Body.Response.Result)
	receipt, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sms: unexpected gateway result %q", result)
	}
	// The gateway signals delivery errors with small non-positive codes.
	if receipt <= 0 {
		return 0, fmt.Errorf("sms: gateway rejected message with code %d", receipt)
	}
	return receipt, nil
}
