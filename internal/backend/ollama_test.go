package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaInvoke(t *testing.T) {
	var gotReq ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s, want /api/generate", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": `{"question_text": "Q"}`})
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "granite4:3b-h")
	got, err := o.Invoke(context.Background(), "generate a question")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != `{"question_text": "Q"}` {
		t.Errorf("reply = %q", got)
	}

	if gotReq.Model != "granite4:3b-h" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if gotReq.Prompt != "generate a question" {
		t.Errorf("request prompt = %q", gotReq.Prompt)
	}
	if gotReq.Stream {
		t.Error("request must disable streaming")
	}
	if gotReq.Format != "json" {
		t.Errorf("request format = %q, want json", gotReq.Format)
	}
}

func TestOllamaInvokeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "granite4:3b-h")
	_, err := o.Invoke(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for status 500")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("error should carry status and body: %v", err)
	}
}

func TestOllamaInvokeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	o := NewOllama(srv.URL, "granite4:3b-h")
	if _, err := o.Invoke(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error when the server is down")
	}
}

func TestOllamaTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s, want /api/generate", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "{}"})
	}))
	defer srv.Close()

	o := NewOllama(srv.URL+"/", "m")
	if _, err := o.Invoke(context.Background(), "p"); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
}

func TestNewBackendSelection(t *testing.T) {
	ctx := context.Background()

	b, err := New(ctx, Config{Provider: "ollama", OllamaURL: "http://localhost:11434", OllamaModel: "m"})
	if err != nil {
		t.Fatalf("New(ollama): %v", err)
	}
	if _, ok := b.(*Ollama); !ok {
		t.Errorf("provider ollama built %T", b)
	}

	b, err = New(ctx, Config{})
	if err != nil {
		t.Fatalf("New(default): %v", err)
	}
	if _, ok := b.(*Ollama); !ok {
		t.Errorf("default provider built %T", b)
	}

	b, err = New(ctx, Config{Provider: "GEMINI", GeminiModel: "gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("New(gemini): %v", err)
	}
	if _, ok := b.(*Gemini); !ok {
		t.Errorf("provider gemini built %T", b)
	}

	if _, err := New(ctx, Config{Provider: "bard"}); err == nil {
		t.Error("unknown provider should fail")
	}
}
