package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conflictcheck/namecheck/config"
	internalErrors "github.com/conflictcheck/namecheck/internal/errors"
	"github.com/conflictcheck/namecheck/model"
	"github.com/conflictcheck/namecheck/services"
)

func testConfig(baseURL string) config.ClassifierConfig {
	return config.ClassifierConfig{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		Model:     "test-model",
		MaxTokens: 1024,
		Timeout:   2 * time.Second,
	}
}

func messagesBody(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return string(body)
}

func TestClassifySuccess(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(messagesBody(`[{"name": "Srah Mitchel", "tier": 2, "justification": "typo"}]`)))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	matches, err := client.Classify(context.Background(), services.ClassifierRequest{
		SearchName: "Sarah Mitchell",
		Candidates: []string{"Srah Mitchel"},
	})

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Srah Mitchel", matches[0].Name)
	assert.Equal(t, 2, matches[0].Tier)

	assert.Equal(t, "test-model", captured["model"])
	messages := captured["messages"].([]interface{})
	prompt := messages[0].(map[string]interface{})["content"].(string)
	assert.Contains(t, prompt, `SEARCH NAME: "Sarah Mitchell"`)
	assert.Contains(t, prompt, "1. Srah Mitchel")
}

func TestClassifyPromptIncludesHints(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var captured map[string]interface{}
		json.NewDecoder(r.Body).Decode(&captured)
		messages := captured["messages"].([]interface{})
		prompt = messages[0].(map[string]interface{})["content"].(string)
		w.Write([]byte(messagesBody("[]")))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	_, err := client.Classify(context.Background(), services.ClassifierRequest{
		SearchName:    "Donna Karan New York",
		Candidates:    []string{"DKNY"},
		SearchAcronym: "dkny",
		ContactMatches: []model.ContactMatch{
			{Name: "Donna Karan NY LLC", MatchedField: model.FieldPhoneNumber, MatchedValue: "555-123-4567"},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, prompt, `ACRONYM OF SEARCH NAME: "dkny"`)
	assert.Contains(t, prompt, "Donna Karan NY LLC (matched on Phone Number)")
}

func TestClassifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	_, err := client.Classify(context.Background(), services.ClassifierRequest{
		SearchName: "Sarah Mitchell",
		Candidates: []string{"Srah Mitchel"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrClassifierUnavailable))
}

func TestClassifyUnreachable(t *testing.T) {
	client := New(testConfig("http://127.0.0.1:1"), nil)
	_, err := client.Classify(context.Background(), services.ClassifierRequest{
		SearchName: "Sarah Mitchell",
		Candidates: []string{"Srah Mitchel"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrClassifierUnavailable))
}

func TestClassifyMalformedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(messagesBody("sorry, I cannot answer in JSON today")))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	_, err := client.Classify(context.Background(), services.ClassifierRequest{
		SearchName: "Sarah Mitchell",
		Candidates: []string{"Srah Mitchel"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrMalformedResponse))
}

func TestClassifyContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(messagesBody("[]")))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Classify(ctx, services.ClassifierRequest{
		SearchName: "Sarah Mitchell",
		Candidates: []string{"Srah Mitchel"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrClassifierUnavailable))
}
