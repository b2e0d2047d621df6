package sms

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const gatewayResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SendByBaseNumber2Response xmlns="http://tempuri.org/">
      <SendByBaseNumber2Result>%RESULT%</SendByBaseNumber2Result>
    </SendByBaseNumber2Response>
  </soap:Body>
</soap:Envelope>`

func newGatewayServer(t *testing.T, result string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("SOAPAction"); got != "http://tempuri.org/SendByBaseNumber2" {
			t.Errorf("soap action want SendByBaseNumber2 got %s", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body failed: %v", err)
		}
		if capture != nil {
			*capture = string(body)
		}
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		io.WriteString(w, strings.ReplaceAll(gatewayResponse, "%RESULT%", result))
	}))
}

func TestSendByBaseNumberSuccess(t *testing.T) {
	var requestBody string
	server := newGatewayServer(t, "15001234567890", &requestBody)
	defer server.Close()

	client := NewClient(Options{
		Endpoint: server.URL,
		Username: "panel-user",
		Password: "panel-pass",
	})
	receipt, err := client.SendByBaseNumber(context.Background(), "4821", "09121234567", 12345)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if receipt != 15001234567890 {
		t.Fatalf("receipt want 15001234567890 got %d", receipt)
	}

	for _, fragment := range []string{
		"<username>panel-user</username>",
		"<text>4821</text>",
		"<to>09121234567</to>",
		"<bodyId>12345</bodyId>",
	} {
		if !strings.Contains(requestBody, fragment) {
			t.Fatalf("request body missing %s:\n%s", fragment, requestBody)
		}
	}
}

func TestSendByBaseNumberRejection(t *testing.T) {
	server := newGatewayServer(t, "-7", nil)
	defer server.Close()

	client := NewClient(Options{Endpoint: server.URL})
	if _, err := client.SendByBaseNumber(context.Background(), "1111", "09121234567", 1); err == nil {
		t.Fatalf("non-positive gateway code must be an error")
	}
}

func TestSendByBaseNumberBadResult(t *testing.T) {
	server := newGatewayServer(t, "invalid-credentials", nil)
	defer server.Close()

	client := NewClient(Options{Endpoint: server.URL})
	if _, err := client.SendByBaseNumber(context.Background(), "1111", "09121234567", 1); err == nil {
		t.Fatalf("non-numeric gateway result must be an error")
	}
}

func TestSendByBaseNumberRequiresEndpoint(t *testing.T) {
	client := NewClient(Options{})
	if _, err := client.SendByBaseNumber(context.Background(), "1111", "09121234567", 1); err == nil {
		t.Fatalf("missing endpoint must be an error")
	}
}
