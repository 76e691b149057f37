package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
)

func TestOpenAIInterpreter_Interpret_StructuredJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4-vision-preview", req.Model)
		require.Len(t, req.Messages, 2)

		w.Write([]byte(`{"choices":[{"message":{"content":"{\"palette\":[\"#fff\"]}"}}]}`))
	}))
	defer server.Close()

	v := NewOpenAIInterpreter("test-key", server.URL, "gpt-4-vision-preview")
	res := v.Interpret(context.Background(), "https://cdn.example.com/render.png", &domain.DesignAnalysis{})

	require.NotNil(t, res)
	assert.Equal(t, []interface{}{"#fff"}, res["palette"])
}

func TestOpenAIInterpreter_Interpret_RawContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"The design uses a dark navbar."}}]}`))
	}))
	defer server.Close()

	v := NewOpenAIInterpreter("test-key", server.URL, "m")
	res := v.Interpret(context.Background(), "https://cdn.example.com/render.png", &domain.DesignAnalysis{})

	require.NotNil(t, res)
	assert.Equal(t, "The design uses a dark navbar.", res["raw"])
}

func TestOpenAIInterpreter_Interpret_NilOnFailure(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		v := NewOpenAIInterpreter("test-key", server.URL, "m")
		assert.Nil(t, v.Interpret(context.Background(), "https://cdn.example.com/x.png", &domain.DesignAnalysis{}))
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		v := NewOpenAIInterpreter("test-key", server.URL, "m")
		assert.Nil(t, v.Interpret(context.Background(), "https://cdn.example.com/x.png", &domain.DesignAnalysis{}))
	})

	t.Run("empty image url", func(t *testing.T) {
		v := NewOpenAIInterpreter("test-key", "http://127.0.0.1:1", "m")
		assert.Nil(t, v.Interpret(context.Background(), "", &domain.DesignAnalysis{}))
	})

	t.Run("unreachable host", func(t *testing.T) {
		v := NewOpenAIInterpreter("test-key", "http://127.0.0.1:1", "m")
		assert.Nil(t, v.Interpret(context.Background(), "https://cdn.example.com/x.png", &domain.DesignAnalysis{}))
	})
}

func TestNullInterpreter(t *testing.T) {
	v := NullInterpreter{}
	assert.False(t, v.Configured())
	assert.Nil(t, v.Interpret(context.Background(), "https://cdn.example.com/x.png", &domain.DesignAnalysis{}))
}
