package fcm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const unregisteredBody = `{
  "error": {
    "code": 404,
    "message": "Requested entity was not found.",
    "status": "NOT_FOUND",
    "details": [
      {"@type": "type.googleapis.com/google.firebase.fcm.v1.FcmError", "errorCode": "UNREGISTERED"}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{ProjectID: "demo", BaseURL: server.URL}, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "access"}))
}

func TestSend(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/projects/demo/messages:send", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Message Message `json:"message"`
		}
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "device-token", payload.Message.Token)
		assert.Equal(t, "hello", payload.Message.Notification.Title)

		_, _ = w.Write([]byte(`{"name":"projects/demo/messages/1"}`))
	})

	id, err := client.Send(context.Background(), &Message{
		Token:        "device-token",
		Notification: &Notification{Title: "hello", Body: "world"},
	})
	require.NoError(t, err)
	assert.Equal(t, "projects/demo/messages/1", id)
}

func TestSendUnregistered(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(unregisteredBody))
	})

	_, err := client.Send(context.Background(), &Message{Token: "stale"})
	require.Error(t, err)
	assert.True(t, IsInvalidToken(err))

	var fcmErr *Error
	require.ErrorAs(t, err, &fcmErr)
	assert.Equal(t, "NOT_FOUND", fcmErr.Status)
	assert.Equal(t, CodeUnregistered, fcmErr.ErrorCode)
}

func TestSendQuotaIsNotInvalidToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED","details":[{"errorCode":"QUOTA_EXCEEDED"}]}}`))
	})

	_, err := client.Send(context.Background(), &Message{Token: "t"})
	require.Error(t, err)
	assert.False(t, IsInvalidToken(err))
}

func TestSendMulticastPerTokenResults(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var payload struct {
			Message Message `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload.Message.Token == "bad" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(unregisteredBody))
			return
		}
		_, _ = w.Write([]byte(`{"name":"projects/demo/messages/` + payload.Message.Token + `"}`))
	})

	batch, err := client.SendMulticast(context.Background(), &MulticastMessage{
		Tokens:       []string{"a", "bad", "c"},
		Notification: &Notification{Title: "t"},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2, batch.SuccessCount)
	assert.Equal(t, 1, batch.FailureCount)
	assert.Equal(t, "bad", batch.Responses[1].Token)
	assert.True(t, IsInvalidToken(batch.Responses[1].Err))
	assert.Equal(t, "projects/demo/messages/c", batch.Responses[2].MessageID)

	_, err = client.SendMulticast(context.Background(), &MulticastMessage{})
	assert.ErrorIs(t, err, ErrNoTokens)
}
