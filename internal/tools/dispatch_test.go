package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amxkifir/italian-jokes-MCP/internal/jokes"
)

func newTestDispatcher(handler http.HandlerFunc) (*Dispatcher, *httptest.Server) {
	ts := httptest.NewServer(handler)
	return NewDispatcher(jokes.New(ts.URL, nil)), ts
}

func resultText(t *testing.T, res Result) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected 1 content block, got %d", len(res.Content))
	}
	if res.Content[0].Type != "text" {
		t.Fatalf("content type = %q", res.Content[0].Type)
	}
	return res.Content[0].Text
}

func TestInvokeUnknownTool(t *testing.T) {
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {})
	defer ts.Close()

	res := d.Invoke(context.Background(), CallParams{Name: "make_pasta"})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); got != "Error: Unknown tool: make_pasta" {
		t.Fatalf("text = %q", got)
	}
}

func TestInvokeInvalidSubtypeSkipsNetwork(t *testing.T) {
	var calls int64
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	})
	defer ts.Close()

	res := d.Invoke(context.Background(), CallParams{
		Name:      ToolGetJoke,
		Arguments: map[string]interface{}{"subtype": "Knock-knock"},
	})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	text := resultText(t, res)
	if !strings.HasPrefix(text, "Error: Invalid subtype: Knock-knock") {
		t.Fatalf("text = %q", text)
	}
	if !strings.Contains(text, "All, One-liner, Observational, Stereotype, Wordplay, Long") {
		t.Fatalf("text %q missing available options", text)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatalf("network called %d times", calls)
	}
}

func TestInvokeWrongArgumentType(t *testing.T) {
	var calls int64
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	})
	defer ts.Close()

	res := d.Invoke(context.Background(), CallParams{
		Name:      ToolGetJoke,
		Arguments: map[string]interface{}{"subtype": 42},
	})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatalf("network called %d times", calls)
	}
}

func TestInvokeGetJoke(t *testing.T) {
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("subtype"); got != "Wordplay" {
			t.Errorf("subtype param = %q", got)
		}
		w.Write([]byte(`{"id":7,"joke":"Why did the Italian chef quit? He kneaded more space!","type":"Italian","subtype":"Wordplay"}`))
	})
	defer ts.Close()

	res := d.Invoke(context.Background(), CallParams{
		Name:      ToolGetJoke,
		Arguments: map[string]interface{}{"subtype": "Wordplay"},
	})
	if res.IsError {
		t.Fatalf("unexpected error: %v", res.Content)
	}
	text := resultText(t, res)
	want := "🇮🇹 Italian Joke (Wordplay)\n\nWhy did the Italian chef quit? He kneaded more space!\n\n---\nJoke #7 | Type: Italian"
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
}

func TestInvokeGetJokeAllOmitsParam(t *testing.T) {
	var gotQuery string
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"id":1,"joke":"j","type":"Italian","subtype":"Long"}`))
	})
	defer ts.Close()

	res := d.Invoke(context.Background(), CallParams{
		Name:      ToolGetJoke,
		Arguments: map[string]interface{}{"subtype": "All"},
	})
	if res.IsError {
		t.Fatalf("unexpected error: %v", res.Content)
	}
	if gotQuery != "" {
		t.Fatalf("expected no query params, got %q", gotQuery)
	}
}

func TestInvokeGetJokeNotFound(t *testing.T) {
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer ts.Close()

	res := d.Invoke(context.Background(), CallParams{Name: ToolGetJoke})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); got != "Error: No jokes found for the specified subtype" {
		t.Fatalf("text = %q", got)
	}
}

func TestInvokeGetJokeTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer ts.Close()
	d := NewDispatcher(jokes.New(ts.URL, &http.Client{Timeout: 50 * time.Millisecond}))

	start := time.Now()
	res := d.Invoke(context.Background(), CallParams{Name: ToolGetJoke})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); got != "Error: Request timeout - the Italian Jokes API is not responding" {
		t.Fatalf("text = %q", got)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("invoke did not return promptly: %v", elapsed)
	}
}

func TestInvokeGetJokeServerError(t *testing.T) {
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})
	defer ts.Close()

	res := d.Invoke(context.Background(), CallParams{Name: ToolGetJoke})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); got != "Error: API Error: 500 - upstream exploded" {
		t.Fatalf("text = %q", got)
	}
}

func TestInvokeGetJokeMalformedBody(t *testing.T) {
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{{{`))
	})
	defer ts.Close()

	res := d.Invoke(context.Background(), CallParams{Name: ToolGetJoke})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); !strings.HasPrefix(got, "Error: Failed to fetch Italian joke: ") {
		t.Fatalf("text = %q", got)
	}
}

func TestListSubtypesDeterministic(t *testing.T) {
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		t.Error("list_joke_subtypes must not touch the network")
	})
	defer ts.Close()

	first := d.Invoke(context.Background(), CallParams{Name: ToolListSubtypes})
	second := d.Invoke(context.Background(), CallParams{Name: ToolListSubtypes})
	if first.IsError {
		t.Fatalf("unexpected error: %v", first.Content)
	}
	a, b := resultText(t, first), resultText(t, second)
	if a != b {
		t.Fatal("repeated invocations differ")
	}

	var numbered []string
	for _, line := range strings.Split(a, "\n") {
		if len(line) > 1 && line[0] >= '1' && line[0] <= '9' && line[1] == '.' {
			numbered = append(numbered, line)
		}
	}
	if len(numbered) != len(Subtypes) {
		t.Fatalf("expected %d numbered lines, got %d:\n%s", len(Subtypes), len(numbered), a)
	}
	for i, s := range Subtypes {
		prefix := fmt.Sprintf("%d. %s", i+1, s)
		if !strings.HasPrefix(numbered[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, numbered[i], prefix)
		}
	}
	if !strings.Contains(a, "1. All (random joke from any category)") {
		t.Errorf("All entry not annotated:\n%s", a)
	}
}

func TestFetchManySkipsFailures(t *testing.T) {
	var calls int64
	d, ts := newTestDispatcher(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&calls, 1)
		if n%2 == 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"id":%d,"joke":"j","type":"Italian","subtype":"Long"}`, n)
	})
	defer ts.Close()

	got := d.FetchMany(context.Background(), 4, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 jokes, got %d", len(got))
	}
	if atomic.LoadInt64(&calls) != 4 {
		t.Fatalf("expected 4 requests, got %d", calls)
	}
}
