package figma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
)

func TestClient_Fetch_WholeFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Figma-Token") != "test-token" {
			t.Errorf("missing figma token header")
		}
		switch r.URL.Path {
		case "/files/ABC123":
			w.Write([]byte(`{"name":"My Design","version":"42","lastModified":"2024-01-01",
				"document":{"id":"0:0","name":"Document","type":"DOCUMENT",
				"children":[{"id":"1:1","name":"Page","type":"CANVAS"}]}}`))
		case "/images/ABC123":
			if r.URL.Query().Get("scale") != "2" {
				t.Errorf("expected scale=2, got %s", r.URL.Query().Get("scale"))
			}
			w.Write([]byte(`{"images":{"1:1":"https://cdn.example.com/render.png"}}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	res := client.Fetch(context.Background(), domain.DesignReference{FileKey: "ABC123"})

	require.NotNil(t, res.Document)
	assert.False(t, res.Mock)
	assert.Equal(t, "My Design", res.FileName)
	assert.Equal(t, "42", res.Version)
	assert.Equal(t, "https://cdn.example.com/render.png", res.ImageURL)
	assert.Equal(t, "DOCUMENT", res.Document.Type)
}

func TestClient_Fetch_NodeScoped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/ABC123/nodes":
			assert.Equal(t, "1:23", r.URL.Query().Get("ids"))
			w.Write([]byte(`{"name":"My Design","version":"7",
				"nodes":{"1:23":{"document":{"id":"1:23","name":"Hero","type":"FRAME"}}}}`))
		case "/images/ABC123":
			assert.Equal(t, "1:23", r.URL.Query().Get("ids"))
			w.Write([]byte(`{"images":{"1:23":"https://cdn.example.com/hero.png"}}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	res := client.Fetch(context.Background(), domain.DesignReference{FileKey: "ABC123", NodeID: "1:23"})

	require.NotNil(t, res.Document)
	assert.Equal(t, "Hero", res.Document.Name)
	assert.Equal(t, "https://cdn.example.com/hero.png", res.ImageURL)
}

func TestClient_Fetch_DegradesOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL)
	res := client.Fetch(context.Background(), domain.DesignReference{FileKey: "ABC123"})

	assert.True(t, res.Mock)
	assert.Nil(t, res.Document)
	assert.Empty(t, res.ImageURL)
}

func TestClient_Fetch_DegradesOnUnreachableHost(t *testing.T) {
	client := NewClient("test-token", "http://127.0.0.1:1")
	res := client.Fetch(context.Background(), domain.DesignReference{FileKey: "ABC123"})

	assert.True(t, res.Mock)
	assert.Nil(t, res.Document)
}

func TestClient_Configured(t *testing.T) {
	assert.True(t, NewClient("tok", "http://x").Configured())
	assert.False(t, NewClient("", "http://x").Configured())
}

func TestNullMetadataSource(t *testing.T) {
	src := NullMetadataSource{}
	assert.False(t, src.Configured())

	res := src.Fetch(context.Background(), domain.DesignReference{FileKey: "ABC123"})
	assert.True(t, res.Mock)
	assert.Nil(t, res.Document)
}
