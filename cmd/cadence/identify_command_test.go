package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newLookupServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/lookup", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		payload := map[string]any{
			"status": "ok",
			"results": []map[string]any{
				{
					"id":    "result-1",
					"score": 0.97,
					"recordings": []map[string]any{
						{
							"id":    "rec-1",
							"title": "Thunderstruck",
							"artists": []map[string]any{
								{"id": "artist-1", "name": "AC/DC"},
							},
							"releasegroups": []map[string]any{
								{
									"id":    "group-1",
									"type":  "Album",
									"title": "The Razor's Edge",
									"artists": []map[string]any{
										{"id": "artist-1", "name": "AC/DC"},
									},
								},
							},
						},
					},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode lookup payload: %v", err)
		}
	})
	mux.HandleFunc("/submit", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.PostFormValue("user") == "" {
			http.Error(w, "missing user key", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			t.Errorf("write submit payload: %v", err)
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestIdentifyCommandTableOutput(t *testing.T) {
	server := newLookupServer(t)
	env := setupCLITestEnv(t, server.URL)

	out, _, err := runCLI(t, []string{"identify", env.audioPath}, env.configPath)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	requireContains(t, out, "Thunderstruck")
	requireContains(t, out, "AC/DC")
	requireContains(t, out, "The Razor's Edge")
}

func TestIdentifyCommandJSONOutput(t *testing.T) {
	server := newLookupServer(t)
	env := setupCLITestEnv(t, server.URL)

	out, _, err := runCLI(t, []string{"identify", env.audioPath, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("identify --json: %v", err)
	}

	var candidates []struct {
		Title       string  `json:"title"`
		Artist      string  `json:"artist"`
		Album       *string `json:"album"`
		AlbumArtist *string `json:"albumartist"`
	}
	if err := json.Unmarshal([]byte(out), &candidates); err != nil {
		t.Fatalf("decode identify output: %v\n%s", err, out)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected one candidate, got %d", len(candidates))
	}
	if candidates[0].Title != "Thunderstruck" || candidates[0].Artist != "AC/DC" {
		t.Fatalf("unexpected candidate: %+v", candidates[0])
	}
	if candidates[0].Album == nil || *candidates[0].Album != "The Razor's Edge" {
		t.Fatalf("expected album, got %+v", candidates[0].Album)
	}
}

func TestIdentifyCommandRecordsHistory(t *testing.T) {
	server := newLookupServer(t)
	env := setupCLITestEnv(t, server.URL)

	if _, _, err := runCLI(t, []string{"identify", env.audioPath}, env.configPath); err != nil {
		t.Fatalf("identify: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Thunderstruck")
	requireContains(t, out, env.audioPath)

	out, _, err = runCLI(t, []string{"history", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Cleared identification history")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history after clear: %v", err)
	}
	requireContains(t, out, "No identification history recorded")
}

func TestIdentifyCommandMissingFile(t *testing.T) {
	env := setupCLITestEnv(t, "")

	if _, _, err := runCLI(t, []string{"identify", env.baseDir + "/missing.flac"}, env.configPath); err == nil {
		t.Fatal("expected identify to fail for a missing file")
	}
}
