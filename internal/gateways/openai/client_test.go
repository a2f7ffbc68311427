package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanQuote(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"Dream big."`, "Dream big."},
		{"`Dream big.`", "Dream big."},
		{"json {\"quote\": \"x\"} Dream big.", "Dream big."},
		{"Quote: Dream big.", "Dream big."},
		{"Dream big. Author: Somebody Famous", "Dream big."},
		{"Dream big,  ", "Dream big"},
		{"  Dream big.  ", "Dream big."},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, cleanQuote(tc.in), "input %q", tc.in)
	}
}

func TestMotivationalQuoteFallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newClientWithBaseURL("test-key", srv.URL)
	q, err := c.MotivationalQuote(context.Background(), "general")
	require.NoError(t, err)
	require.NotEmpty(t, q.Text)
	require.NotEmpty(t, q.Author)
	require.Empty(t, q.Theme)
}

func TestMotivationalQuoteFallsBackOnMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "{\"oops\": true}"}}]}`))
	}))
	defer srv.Close()

	c := newClientWithBaseURL("test-key", srv.URL)
	q, err := c.MotivationalQuote(context.Background(), "focus")
	require.NoError(t, err)
	require.NotContains(t, q.Text, "{")
	require.NotEmpty(t, q.Author)
}

func TestMotivationalQuoteCleansReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "\"Keep moving forward, always.\""}}]}`))
	}))
	defer srv.Close()

	c := newClientWithBaseURL("test-key", srv.URL)
	q, err := c.MotivationalQuote(context.Background(), "persistence")
	require.NoError(t, err)
	require.Equal(t, "Keep moving forward, always.", q.Text)
	require.Equal(t, "Anonymous", q.Author)
	require.Equal(t, "persistence", q.Theme)
}

func TestGenerateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created": 1700000000, "data": [{"url": "https://oai.example/img.png"}]}`))
	}))
	defer srv.Close()

	c := newClientWithBaseURL("test-key", srv.URL)
	img, err := c.GenerateImage(context.Background(), "  a lighthouse at dusk ", "")
	require.NoError(t, err)
	require.Equal(t, "https://oai.example/img.png", img.URL)
	require.Equal(t, "a lighthouse at dusk", img.Prompt)
	require.Equal(t, "1024x1024", img.Size)
}

func TestGenerateImageValidation(t *testing.T) {
	c := NewClient("test-key")

	_, err := c.GenerateImage(context.Background(), "   ", "1024x1024")
	require.Error(t, err)

	_, err = c.GenerateImage(context.Background(), "a lighthouse", "512x512")
	require.Error(t, err)
}

func TestGenerateImageEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created": 1700000000, "data": []}`))
	}))
	defer srv.Close()

	c := newClientWithBaseURL("test-key", srv.URL)
	_, err := c.GenerateImage(context.Background(), "a lighthouse", "1792x1024")
	require.ErrorContains(t, err, "no image URL received")
}

func TestImageFact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": " Lighthouses date back to ancient Egypt. "}}]}`))
	}))
	defer srv.Close()

	c := newClientWithBaseURL("test-key", srv.URL)
	fact, err := c.ImageFact(context.Background(), "https://img.example/lighthouse.png", "unknown-language")
	require.NoError(t, err)
	require.Equal(t, "Lighthouses date back to ancient Egypt.", fact.Text)
	require.Equal(t, "unknown-language", fact.Language)
	require.Equal(t, "https://img.example/lighthouse.png", fact.ImageURL)
}

func TestImageFactRequiresURL(t *testing.T) {
	c := NewClient("test-key")
	_, err := c.ImageFact(context.Background(), "", "english")
	require.Error(t, err)
}
