package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ResolvesAgainstBaseURL(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL + "/api/"))
	var out struct{ OK bool }
	require.NoError(t, c.GetJSON(context.Background(), "/stocks/SFBT/predict", url.Values{"days": {"7"}}, &out))

	assert.True(t, out.OK)
	assert.Equal(t, "/api/stocks/SFBT/predict", gotPath)
	assert.Equal(t, "days=7", gotQuery)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Stock not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewClient(WithBaseURL(srv.URL)).GetJSON(context.Background(), "stocks/NOPE/history", nil, &[]any{})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Contains(t, se.Body, "Stock not found")
}

func TestClient_PostJSONSetsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	in := map[string]any{"type": "BUY", "quantity": 3}
	var raw []byte
	require.NoError(t, NewClient(WithBaseURL(srv.URL)).PostJSON(context.Background(), "/portfolio/transaction", in, &raw))

	var echoed map[string]any
	require.NoError(t, json.Unmarshal(raw, &echoed))
	assert.Equal(t, "BUY", echoed["type"])
}
