package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExchangeRateClient_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
            "result": "success",
            "base_code": "USD",
            "target_code": "PHP",
            "conversion_rate": 56.0
        }`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/v6/secret/")

	rate, err := c.GetPairRate(context.Background(), "USD", "PHP")
	require.NoError(t, err)
	require.Equal(t, "/v6/secret/pair/USD/PHP", gotPath)
	require.InDelta(t, 56.0, rate, 1e-9)
}

func TestExchangeRateClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/v6/key")

	_, err := c.GetPairRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code 503")
	require.Contains(t, err.Error(), "USD/EUR")
}

func TestExchangeRateClient_JSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{")) // invalid JSON
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/v6/key")

	_, err := c.GetPairRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode response for pair \"USD/EUR\"")
}

func TestExchangeRateClient_NonSuccessResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": "error", "error-type": "invalid-key"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/v6/key")

	_, err := c.GetPairRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	require.Contains(t, err.Error(), "api returned non-success result for pair \"USD/EUR\": error (invalid-key)")
}

func TestExchangeRateClient_UnusableRate(t *testing.T) {
	cases := map[string]string{
		"zero":     `{"result": "success", "conversion_rate": 0}`,
		"negative": `{"result": "success", "conversion_rate": -3.5}`,
		"missing":  `{"result": "success"}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(payload))
			}))
			t.Cleanup(srv.Close)

			c := NewExchangeRateClient(srv.Client(), srv.URL+"/v6/key")

			_, err := c.GetPairRate(context.Background(), "USD", "EUR")
			require.Error(t, err)
			require.Contains(t, err.Error(), "api returned unusable rate")
		})
	}
}

func TestExchangeRateClient_MismatchedPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": "success", "base_code": "EUR", "target_code": "USD", "conversion_rate": 1.08}`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/v6/key")

	_, err := c.GetPairRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	require.Contains(t, err.Error(), "api answered for pair \"EUR/USD\" instead of \"USD/EUR\"")
}

func TestExchangeRateClient_BaseURLParseError(t *testing.T) {
	c := NewExchangeRateClient(&http.Client{}, "http://::1]")
	_, err := c.GetPairRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse base URL")
}
