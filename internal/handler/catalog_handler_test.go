package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"steamcatalog/backend/internal/catalog"
	"steamcatalog/backend/internal/database"
	"steamcatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
)

func newTestRouter(t *testing.T) (*gin.Engine, *database.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := database.New(sqlite.Open(":memory:"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	h := NewCatalog(catalog.New(store), log.New(io.Discard, "", 0))

	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Steam game catalog API"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	steamAPI := router.Group("/steam_api")
	{
		steamAPI.GET("/game_detail/:key", h.GetGameDetail)
		steamAPI.GET("/game_list_by_tag/:tag", h.GetGameListByTag)
		steamAPI.GET("/game_list", h.GetGameList)
	}
	return router, store
}

func seedStore(t *testing.T, store *database.Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.BulkInsert(ctx, models.TableGames, []database.Row{
		models.GameRow(10, "Counter-Strike", 1),
		models.GameRow(70, "Half Life", 2),
	}); err != nil {
		t.Fatalf("seed games: %v", err)
	}
	if err := store.BulkInsert(ctx, models.TableTags, []database.Row{
		models.TagRow("FPS"),
	}); err != nil {
		t.Fatalf("seed tags: %v", err)
	}
	rows, err := store.Query(ctx, models.TableTags, []string{"tag_id"}, models.TagName("FPS").Map())
	if err != nil || len(rows) == 0 {
		t.Fatalf("resolve FPS: %v", err)
	}
	tagID := rows[0]["tag_id"].(int64)
	if err := store.BulkInsert(ctx, models.TableGameTags, []database.Row{
		models.AssociationRow(10, tagID, 1.0),
		models.AssociationRow(70, tagID, 1.0),
	}); err != nil {
		t.Fatalf("seed associations: %v", err)
	}
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetGameDetailByID(t *testing.T) {
	router, store := newTestRouter(t)
	seedStore(t, store)

	w := doRequest(t, router, "/steam_api/game_detail/10")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", w.Code, w.Body.String())
	}

	var detail struct {
		AppID int64    `json:"appid"`
		Name  string   `json:"name"`
		Tags  []string `json:"tags"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if detail.AppID != 10 || detail.Name != "Counter-Strike" {
		t.Errorf("unexpected detail: %+v", detail)
	}
	if len(detail.Tags) != 1 || detail.Tags[0] != "FPS" {
		t.Errorf("unexpected tags: %v", detail.Tags)
	}
}

func TestGetGameDetailByNameWithEncodedSpace(t *testing.T) {
	router, store := newTestRouter(t)
	seedStore(t, store)

	w := doRequest(t, router, "/steam_api/game_detail/Half%20Life")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", w.Code, w.Body.String())
	}

	var detail struct {
		AppID int64 `json:"appid"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if detail.AppID != 70 {
		t.Errorf("expected appid 70, got %d", detail.AppID)
	}
}

func TestGetGameDetailNotFound(t *testing.T) {
	router, store := newTestRouter(t)
	seedStore(t, store)

	w := doRequest(t, router, "/steam_api/game_detail/99999")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an absent appid, got %d", w.Code)
	}
}

func TestGetGameListByTag(t *testing.T) {
	router, store := newTestRouter(t)
	seedStore(t, store)

	w := doRequest(t, router, "/steam_api/game_list_by_tag/FPS?page=1&per_page=1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", w.Code, w.Body.String())
	}

	var page struct {
		AppIDs []int64           `json:"appids"`
		Total  int               `json:"total_items"`
		Links  map[string]string `json:"_links"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if page.Total != 2 || len(page.AppIDs) != 1 {
		t.Errorf("unexpected page: %+v", page)
	}
	if page.Links["next"] == "" {
		t.Error("expected next link on page 1 of 2")
	}
}

func TestGetGameListByTagNotFound(t *testing.T) {
	router, store := newTestRouter(t)
	seedStore(t, store)

	w := doRequest(t, router, "/steam_api/game_list_by_tag/Roguelike")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown tag, got %d", w.Code)
	}
}

func TestGetGameList(t *testing.T) {
	router, store := newTestRouter(t)
	seedStore(t, store)

	w := doRequest(t, router, "/steam_api/game_list")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", w.Code, w.Body.String())
	}

	var page struct {
		AppIDs []int64 `json:"appids"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(page.AppIDs) != 2 || page.AppIDs[0] != 10 || page.AppIDs[1] != 70 {
		t.Errorf("expected [10 70] by rank, got %v", page.AppIDs)
	}
}

func TestWelcomeAndUnmatchedRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	if w := doRequest(t, router, "/"); w.Code != http.StatusOK {
		t.Errorf("expected 200 on the welcome route, got %d", w.Code)
	}
	if w := doRequest(t, router, "/nope/nothing"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on an unmatched route, got %d", w.Code)
	}
}
