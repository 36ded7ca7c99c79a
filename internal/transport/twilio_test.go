package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwilioMessengerSend(t *testing.T) {
	ctx := context.Background()

	t.Run("posts form and returns message sid", func(t *testing.T) {
		var gotPath, gotFrom, gotTo, gotBody string
		var gotUser, gotPass string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUser, gotPass, _ = r.BasicAuth()
			require.NoError(t, r.ParseForm())
			gotFrom = r.PostFormValue("From")
			gotTo = r.PostFormValue("To")
			gotBody = r.PostFormValue("Body")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"sid":"SM123","status":"queued"}`))
		}))
		defer server.Close()

		m := NewTwilioMessenger("AC111", "token", "whatsapp:+14155238886")
		m.baseURL = server.URL

		sid, err := m.Send(ctx, "whatsapp:+15551234567", "hello there")
		require.NoError(t, err)

		assert.Equal(t, "SM123", sid)
		assert.Equal(t, "/2010-04-01/Accounts/AC111/Messages.json", gotPath)
		assert.Equal(t, "AC111", gotUser)
		assert.Equal(t, "token", gotPass)
		assert.Equal(t, "whatsapp:+14155238886", gotFrom)
		assert.Equal(t, "whatsapp:+15551234567", gotTo)
		assert.Equal(t, "hello there", gotBody)
	})

	t.Run("surfaces api errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Authenticate"}`))
		}))
		defer server.Close()

		m := NewTwilioMessenger("AC111", "bad-token", "whatsapp:+14155238886")
		m.baseURL = server.URL

		_, err := m.Send(ctx, "whatsapp:+15551234567", "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "Authenticate")
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		m := NewTwilioMessenger("AC111", "token", "whatsapp:+14155238886")
		m.baseURL = "http://127.0.0.1:1"

		_, err := m.Send(ctx, "whatsapp:+15551234567", "hello")
		assert.Error(t, err)
	})
}
