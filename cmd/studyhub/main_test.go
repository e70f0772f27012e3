// End-to-end tests for the studyhub CLI: command → config → dispatcher →
// REST generator → mocked Gemini endpoint.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"

	"github.com/hpn/studyhub/internal/study"
)

const testAPIKey = "AIzaSyTestKey000000000000000000000000000"

func init() {
	color.NoColor = true
}

// ============================================================================
// SETUP HELPERS
// ============================================================================

const studyDoc = `Photosynthesis converts light energy into chemical energy.
Plants store this energy as glucose. The overall reaction is E = mc^2 for no good reason.
See (Smith, 2020) for details.`

// mockGemini simulates the generateContent endpoint. It answers according to
// which study prompt it receives.
type mockGemini struct {
	*httptest.Server
	calls atomic.Int64
}

func newMockGemini(t *testing.T) *mockGemini {
	t.Helper()

	m := &mockGemini{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.calls.Add(1)

		if r.Header.Get("x-goog-api-key") != testAPIKey {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`))
			return
		}

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Contents) == 0 || len(req.Contents[0].Parts) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		writeCandidate(w, answerFor(req.Contents[0].Parts[0].Text))
	}))
	t.Cleanup(m.Close)
	return m
}

func answerFor(prompt string) string {
	switch {
	case strings.Contains(prompt, "multiple-choice"):
		return `[{"question":"What does photosynthesis produce?","options":["Glucose","Salt","Iron","Sand"],"correctAnswer":"Glucose","explanation":"Plants store energy as glucose."}]`
	case strings.Contains(prompt, "flashcards"):
		return "```json\n[{\"front\":\"Photosynthesis\",\"back\":\"Light to chemical energy\"}]\n```"
	case strings.Contains(prompt, "Extract 5"):
		return `[{"term":"Glucose","definition":"A sugar that stores energy."}]`
	case strings.Contains(prompt, "Summarize"):
		return "- Plants turn light into glucose."
	case strings.Contains(prompt, "teaching script"):
		return "Hello students. Today we learn how plants eat sunlight. That is all."
	default:
		return "Plants make food from light."
	}
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
}

type cliEnv struct {
	dir        string
	configPath string
	docPath    string
}

// setupCLI isolates the process environment and writes a config pointing the
// REST backend at baseURL.
func setupCLI(t *testing.T, baseURL, apiKey string) *cliEnv {
	t.Helper()

	t.Setenv("GEMINI_API_KEY", apiKey)
	t.Setenv("ALT_KEY", "")
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "STUDYHUB_") {
			name, _, _ := strings.Cut(kv, "=")
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}

	dir := t.TempDir()
	env := &cliEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		docPath:    filepath.Join(dir, "notes.txt"),
	}

	cfg := "generator:\n" +
		"  backend: rest\n" +
		"  base_url: " + baseURL + "\n" +
		"  models: [gemini-test]\n" +
		"retry:\n" +
		"  max_attempts: 1\n" +
		"  base_delay_seconds: 0.001\n" +
		"logging:\n" +
		"  level: error\n"
	if err := os.WriteFile(env.configPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(env.docPath, []byte(studyDoc), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return env
}

// run executes the CLI with args and returns stdout, stderr and the error.
func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--config", e.configPath,
		"--env-file", filepath.Join(e.dir, "missing.env"),
	}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// ============================================================================
// TESTS
// ============================================================================

func TestAnalyzeNeedsNoCredentials(t *testing.T) {
	env := setupCLI(t, "http://127.0.0.1:1", "")

	out, _, err := env.run(t, "analyze", "--json", "--file", env.docPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var a study.Analysis
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		t.Fatalf("decode analysis: %v\n%s", err, out)
	}
	if a.WordCount == 0 {
		t.Error("expected a non-zero word count")
	}
	if len(a.Citations) != 1 || a.Citations[0].Title != "(Smith, 2020)" {
		t.Errorf("citations = %+v", a.Citations)
	}
}

func TestAnalyzeRequiresDocument(t *testing.T) {
	env := setupCLI(t, "http://127.0.0.1:1", "")

	_, _, err := env.run(t, "analyze")
	if err == nil || !strings.Contains(err.Error(), "--file") {
		t.Fatalf("expected missing document error, got %v", err)
	}
}

func TestQuiz(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)

	out, stderr, err := env.run(t, "quiz", "--file", env.docPath)
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if !strings.Contains(out, "What does photosynthesis produce?") {
		t.Errorf("quiz output missing question:\n%s", out)
	}
	if !strings.Contains(out, "* A) Glucose") {
		t.Errorf("correct option not marked:\n%s", out)
	}
	if strings.Contains(stderr, "[FALLBACK]") {
		t.Errorf("unexpected fallback notice: %s", stderr)
	}
}

func TestQuizJSON(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)

	out, _, err := env.run(t, "quiz", "--json", "--file", env.docPath)
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}

	var q study.Quiz
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("decode quiz: %v\n%s", err, out)
	}
	if q.Fallback || len(q.Questions) != 1 {
		t.Fatalf("unexpected quiz: %+v", q)
	}
	if q.Questions[0].CorrectAnswer != 0 {
		t.Errorf("CorrectAnswer = %d, want 0", q.Questions[0].CorrectAnswer)
	}
}

func TestQuizFallsBackWithoutCredentials(t *testing.T) {
	env := setupCLI(t, "http://127.0.0.1:1", "")

	out, stderr, err := env.run(t, "quiz", "--json", "--file", env.docPath)
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}

	var q study.Quiz
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}
	if !q.Fallback {
		t.Error("expected fallback quiz")
	}
	if !strings.Contains(stderr, "[FALLBACK] quiz") {
		t.Errorf("missing fallback notice: %q", stderr)
	}
}

func TestFlashcardsStripsFences(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)

	out, _, err := env.run(t, "flashcards", "--json", "--file", env.docPath)
	if err != nil {
		t.Fatalf("flashcards: %v", err)
	}

	var f study.Flashcards
	if err := json.Unmarshal([]byte(out), &f); err != nil {
		t.Fatalf("decode flashcards: %v", err)
	}
	if f.Fallback || len(f.Cards) != 1 || f.Cards[0].Front != "Photosynthesis" {
		t.Errorf("unexpected flashcards: %+v", f)
	}
}

func TestSummary(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)

	out, _, err := env.run(t, "summary", "--file", env.docPath)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"Plants turn light into glucose", "Glucose", "(Smith, 2020)"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestScript(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)

	out, _, err := env.run(t, "script", "--file", env.docPath)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !strings.Contains(out, "Hello students") || !strings.Contains(out, "Recommended duration") {
		t.Errorf("unexpected script output:\n%s", out)
	}
}

func TestChat(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)

	out, _, err := env.run(t, "chat", "--file", env.docPath, "what", "is", "glucose?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if strings.TrimSpace(out) != "Plants make food from light." {
		t.Errorf("chat answer = %q", out)
	}
}

func TestChatWithoutDocument(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)

	out, _, err := env.run(t, "chat", "hello")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if strings.TrimSpace(out) != study.NoDocumentAnswer {
		t.Errorf("chat answer = %q", out)
	}
	if mock.calls.Load() != 0 {
		t.Errorf("expected no generation calls, got %d", mock.calls.Load())
	}
}

func TestAsk(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)

	out, _, err := env.run(t, "ask", "say", "hi")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if strings.TrimSpace(out) != "Plants make food from light." {
		t.Errorf("ask output = %q", out)
	}
}

func TestAskWithoutCredentials(t *testing.T) {
	env := setupCLI(t, "http://127.0.0.1:1", "")

	out, stderr, err := env.run(t, "ask", "say", "hi")
	if err != errReported {
		t.Fatalf("expected errReported, got %v", err)
	}
	if out != "" {
		t.Errorf("expected empty stdout, got %q", out)
	}
	if !strings.Contains(stderr, "AI Error: No API keys configured.") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestAskInvalidKeyExhaustsBudget(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, "AIzaSyWrongKey00000000000000000000000000")

	_, stderr, err := env.run(t, "ask", "hello")
	if err != errReported {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(stderr, "AI Error: The system is overloaded") {
		t.Errorf("stderr = %q", stderr)
	}
	if mock.calls.Load() != 1 {
		t.Errorf("invalid key should be abandoned after one call, got %d", mock.calls.Load())
	}
}

func TestMetricsFile(t *testing.T) {
	mock := newMockGemini(t)
	env := setupCLI(t, mock.URL, testAPIKey)
	metricsPath := filepath.Join(env.dir, "studyhub.prom")

	if _, _, err := env.run(t, "ask", "--metrics-file", metricsPath, "hello"); err != nil {
		t.Fatalf("ask: %v", err)
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	for _, want := range []string{
		`studyhub_dispatch_calls_total{result="success"} 1`,
		`studyhub_dispatch_attempts_total{model="gemini-test",outcome="success"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}

func TestStatus(t *testing.T) {
	env := setupCLI(t, "http://127.0.0.1:1", testAPIKey)

	out, _, err := env.run(t, "status", "--quiet")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "gemini-test") || !strings.Contains(out, "rest") {
		t.Errorf("status output:\n%s", out)
	}
	if strings.Contains(out, testAPIKey) {
		t.Error("status output leaks the raw key")
	}
}

func TestBackendOverrideValidated(t *testing.T) {
	env := setupCLI(t, "http://127.0.0.1:1", testAPIKey)

	_, _, err := env.run(t, "status", "--backend", "grpc")
	if err == nil || !strings.Contains(err.Error(), "backend") {
		t.Fatalf("expected backend validation error, got %v", err)
	}
}
