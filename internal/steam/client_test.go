package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTopGames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[570, 730, 578080]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL+"/detail/")
	ids, err := client.TopGames(context.Background())
	if err != nil {
		t.Fatalf("TopGames: %v", err)
	}
	if len(ids) != 3 || ids[0] != 570 || ids[2] != 578080 {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestTopGamesNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL+"/detail/")
	if _, err := client.TopGames(context.Background()); err == nil {
		t.Error("expected an error on a non-success status")
	}
}

func TestGameDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detail/730" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"appid": 730, "name": "CS:GO", "tags": {"FPS": 1.0, "Shooter": 0.8}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/top", server.URL+"/detail/")
	detail, err := client.GameDetail(context.Background(), 730)
	if err != nil {
		t.Fatalf("GameDetail: %v", err)
	}
	if detail.AppID != 730 || detail.Name != "CS:GO" {
		t.Errorf("unexpected detail: %+v", detail)
	}
	if detail.Tags["Shooter"] != 0.8 {
		t.Errorf("unexpected tags: %v", detail.Tags)
	}
}
