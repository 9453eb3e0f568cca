package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/amxkifir/italian-jokes-MCP/internal/jokes"
	"github.com/amxkifir/italian-jokes-MCP/internal/tools"
)

func (s *Server) handleJoke(w http.ResponseWriter, r *http.Request) {
	subtype := r.URL.Query().Get("subtype")
	if subtype != "" && !tools.ValidSubtype(subtype) {
		writeJSON(w, http.StatusBadRequest, errorBody(invalidSubtypeMsg(subtype)))
		return
	}

	joke, err := s.dispatcher.Client().Get(r.Context(), subtype)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorBody("joke api error: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, jokeResponse{Success: true, Joke: toRestJoke(*joke)})
}

func (s *Server) handleJokes(w http.ResponseWriter, r *http.Request) {
	subtype := r.URL.Query().Get("subtype")
	if subtype != "" && !tools.ValidSubtype(subtype) {
		writeJSON(w, http.StatusBadRequest, errorBody(invalidSubtypeMsg(subtype)))
		return
	}
	count, err := queryInt(r, "count", 3)
	if err != nil || count < 1 || count > 10 {
		writeJSON(w, http.StatusBadRequest, errorBody("count must be between 1 and 10"))
		return
	}

	fetched := s.dispatcher.FetchMany(r.Context(), count, subtype)
	out := make([]restJoke, 0, len(fetched))
	for _, j := range fetched {
		out = append(out, toRestJoke(j))
	}
	writeJSON(w, http.StatusOK, jokesResponse{Success: true, Count: len(out), Jokes: out})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	categories := make([]category, 0, len(tools.Subtypes))
	for _, sub := range tools.Subtypes {
		categories = append(categories, category{
			Value:       sub,
			Description: sub + " jokes",
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": categories,
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	toolNames := make([]string, 0, 2)
	for _, t := range tools.List() {
		toolNames = append(toolNames, t.Name)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "Italian Jokes MCP",
		"version":     Version,
		"description": "MCP bridge for the Italian Jokes API",
		"capabilities": map[string]any{
			"tools": toolNames,
		},
		"protocols": []string{"stdio", "http", "sse"},
		"endpoints": map[string]string{
			"http":   "/api",
			"sse":    "/api/stream",
			"health": "/health",
		},
	})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": tools.List()})
}

// handleCall runs one tool invocation. Tool-level failures still come
// back as 200 with an error-marked result; only an unreadable request
// body is a transport error.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var params tools.CallParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	writeJSON(w, http.StatusOK, s.dispatcher.Invoke(r.Context(), params))
}

func invalidSubtypeMsg(subtype string) string {
	return fmt.Sprintf("invalid subtype %q", subtype)
}

func errorBody(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}

func toRestJoke(j jokes.Joke) restJoke {
	return restJoke{ID: j.ID, Text: j.Joke, Type: j.Type, Subtype: j.Subtype}
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
