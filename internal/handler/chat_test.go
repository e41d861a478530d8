package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/campus-portal/internal/auth"
	"github.com/sakif/campus-portal/internal/handler"
	"github.com/sakif/campus-portal/internal/service"
)

// scriptedReplier satisfies service.Replier without a network.
type scriptedReplier struct {
	online bool
	reply  string
}

func (s *scriptedReplier) Configured() bool { return s.online }

func (s *scriptedReplier) Complete(_ context.Context, _, _ string) (string, error) {
	return s.reply, nil
}

func newChatHandler(env *testEnv, replier service.Replier) *handler.ChatHandler {
	chatService := service.NewChatService(env.db, env.db, replier, env.logger)
	return handler.NewChatHandler(chatService, env.logger)
}

func TestChatHandler_HandleChat(t *testing.T) {
	t.Run("reply envelope", func(t *testing.T) {
		env := newTestEnv(t)
		token := signupAndToken(t, env, "ann@example.com")
		h := newChatHandler(env, &scriptedReplier{online: true, reply: "The fest is in January."})

		protected := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleChat))

		req := httptest.NewRequest(http.MethodPost, "/api/chat",
			bytes.NewBufferString(`{"message":"when is the fest?"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "The fest is in January.", res["reply"])
	})

	t.Run("offline mode still answers", func(t *testing.T) {
		env := newTestEnv(t)
		token := signupAndToken(t, env, "ann@example.com")
		h := newChatHandler(env, &scriptedReplier{online: false})

		protected := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleChat))

		req := httptest.NewRequest(http.MethodPost, "/api/chat",
			bytes.NewBufferString(`{"message":"hello"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Contains(t, res["reply"], "offline mode")
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		env := newTestEnv(t)
		h := newChatHandler(env, &scriptedReplier{online: true, reply: "hi"})

		protected := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleChat))

		req := httptest.NewRequest(http.MethodPost, "/api/chat",
			bytes.NewBufferString(`{"message":"hello"}`))
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("empty message", func(t *testing.T) {
		env := newTestEnv(t)
		token := signupAndToken(t, env, "ann@example.com")
		h := newChatHandler(env, &scriptedReplier{online: true, reply: "hi"})

		protected := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleChat))

		req := httptest.NewRequest(http.MethodPost, "/api/chat",
			bytes.NewBufferString(`{"message":"   "}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_HandleHistory(t *testing.T) {
	env := newTestEnv(t)
	token := signupAndToken(t, env, "ann@example.com")
	h := newChatHandler(env, &scriptedReplier{online: true, reply: "noted"})

	send := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleChat))
	for _, msg := range []string{"first", "second"} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat",
			bytes.NewBufferString(`{"message":"`+msg+`"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		send.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	history := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleHistory))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	history.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var res map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Equal(t, true, res["success"])

	messages := res["messages"].([]any)
	require.Len(t, messages, 2)

	// Newest first
	newest := messages[0].(map[string]any)
	assert.Equal(t, "second", newest["message"])
}
