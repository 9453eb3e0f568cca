package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/amxkifir/italian-jokes-MCP/internal/tools"
)

// handleStreamJokes delivers a bounded series of jokes as server-sent
// events. Fetch failures become per-event error payloads so a broken
// upstream does not tear down the stream mid-way.
func (s *Server) handleStreamJokes(w http.ResponseWriter, r *http.Request) {
	subtype := r.URL.Query().Get("subtype")
	if subtype != "" && !tools.ValidSubtype(subtype) {
		writeJSON(w, http.StatusBadRequest, errorBody(invalidSubtypeMsg(subtype)))
		return
	}
	count, err := queryInt(r, "count", 5)
	if err != nil || count < 1 || count > 20 {
		writeJSON(w, http.StatusBadRequest, errorBody("count must be between 1 and 20"))
		return
	}
	interval, err := queryInterval(r, 2*time.Second)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("interval must be between 0.5 and 10 seconds"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorBody("streaming unsupported"))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for i := 0; i < count; i++ {
		var payload any
		joke, err := s.dispatcher.Client().Get(r.Context(), subtype)
		if err != nil {
			payload = map[string]any{"error": err.Error(), "index": i + 1, "total": count}
		} else {
			payload = map[string]any{"index": i + 1, "total": count, "joke": toRestJoke(*joke)}
		}
		data, _ := json.Marshal(payload)
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()

		if i == count-1 {
			break
		}
		select {
		case <-r.Context().Done():
			return
		case <-time.After(interval):
		}
	}
}

func queryInterval(r *http.Request, def time.Duration) (time.Duration, error) {
	v := r.URL.Query().Get("interval")
	if v == "" {
		return def, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs < 0.5 || secs > 10 {
		return 0, fmt.Errorf("interval out of range")
	}
	return time.Duration(secs * float64(time.Second)), nil
}
