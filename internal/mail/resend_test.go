package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T, handler http.HandlerFunc) *ResendMailer {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := NewResendMailer("re_test_key", "Portfolio Contact <contact@example.com>")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	m.client.BaseURL = base

	return m
}

func TestResendMailer_Send(t *testing.T) {
	var got map[string]any
	m := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_123"}`))
	})

	receipt, err := m.Send(context.Background(), Message{
		To:      []string{"owner@example.com"},
		ReplyTo: "visitor@example.com",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "msg_123", receipt.ID)
	assert.Equal(t, []string{"owner@example.com"}, receipt.Accepted)
	assert.Equal(t, "Portfolio Contact <contact@example.com>", got["from"])
	assert.Equal(t, "Hello", got["subject"])
	assert.Equal(t, "<p>Hi</p>", got["html"])
}

func TestResendMailer_SendFailure(t *testing.T) {
	m := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"bad from"}`))
	})

	_, err := m.Send(context.Background(), Message{To: []string{"owner@example.com"}, Subject: "x", HTML: "y"})

	assert.ErrorIs(t, err, ErrSend)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
