// Package catalog implements the read side of the game catalog: single-game
// lookups with resolved tags, and paginated app id listings.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"steamcatalog/backend/internal/database"
	"steamcatalog/backend/internal/models"
)

// ErrNotFound is returned when a game or tag lookup misses. Handlers map it
// to a 404; every other error is a persistence fault.
var ErrNotFound = errors.New("catalog: not found")

// Links holds navigational links keyed by relation name.
type Links map[string]string

// GameDetail is the full read model for one game.
type GameDetail struct {
	AppID   int64    `json:"appid"`
	Name    string   `json:"name"`
	Ranking int      `json:"ranking"`
	Tags    []string `json:"tags"`
	Links   Links    `json:"_links"`
}

// Page is one slice of an app id listing.
type Page struct {
	AppIDs  []int64 `json:"appids"`
	Total   int     `json:"total_items"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
	Links   Links   `json:"_links"`
}

// Service answers catalog queries against the injected store.
type Service struct {
	store *database.Store
}

func New(store *database.Store) *Service {
	return &Service{store: store}
}

// GameByID looks a game up by its Steam app id.
func (s *Service) GameByID(ctx context.Context, appid int64) (*GameDetail, error) {
	rows, err := s.store.Query(ctx, models.TableGames,
		[]string{"appid", "name", "ranking"}, models.AppID(appid).Map())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return s.buildDetail(ctx, rows[0])
}

// GameByName looks a game up by exact name. Duplicate names are not
// supported; the first match wins.
func (s *Service) GameByName(ctx context.Context, name string) (*GameDetail, error) {
	rows, err := s.store.Query(ctx, models.TableGames,
		[]string{"appid", "name", "ranking"}, models.GameName(name).Map())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return s.buildDetail(ctx, rows[0])
}

// GamesByTag lists the app ids carrying the given tag, paginated.
func (s *Service) GamesByTag(ctx context.Context, tagName string, page, perPage int) (*Page, error) {
	tagRows, err := s.store.Query(ctx, models.TableTags,
		[]string{"tag_id"}, models.TagName(tagName).Map())
	if err != nil {
		return nil, err
	}
	if len(tagRows) == 0 {
		return nil, ErrNotFound
	}
	tagID := asInt64(tagRows[0]["tag_id"])

	assocRows, err := s.store.Query(ctx, models.TableGameTags,
		[]string{"appid"}, models.TagID(tagID).Map())
	if err != nil {
		return nil, err
	}
	appids := make([]int64, 0, len(assocRows))
	for _, row := range assocRows {
		appids = append(appids, asInt64(row["appid"]))
	}

	base := "/steam_api/game_list_by_tag/" + url.PathEscape(tagName)
	return paginate(appids, page, perPage, base), nil
}

// Top100 lists the app ids inside the ranking window, rank ascending,
// paginated.
func (s *Service) Top100(ctx context.Context, page, perPage int) (*Page, error) {
	appids, err := s.store.Top100(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(appids, page, perPage, "/steam_api/game_list"), nil
}

// buildDetail resolves a game row's tags through the association table. Tag
// order follows the association scan and is not guaranteed sorted.
func (s *Service) buildDetail(ctx context.Context, row database.Row) (*GameDetail, error) {
	appid := asInt64(row["appid"])

	assocRows, err := s.store.Query(ctx, models.TableGameTags,
		[]string{"tag_id"}, models.AppID(appid).Map())
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(assocRows))
	for _, assoc := range assocRows {
		tagRows, err := s.store.Query(ctx, models.TableTags,
			[]string{"tag_name"}, models.TagID(asInt64(assoc["tag_id"])).Map())
		if err != nil {
			return nil, err
		}
		if len(tagRows) == 0 {
			continue
		}
		tags = append(tags, asString(tagRows[0]["tag_name"]))
	}

	detail := &GameDetail{
		AppID:   appid,
		Name:    asString(row["name"]),
		Ranking: int(asInt64(row["ranking"])),
		Tags:    tags,
		Links:   detailLinks(appid, tags),
	}
	return detail, nil
}

func detailLinks(appid int64, tags []string) Links {
	links := Links{
		"self":    fmt.Sprintf("/steam_api/game_detail/%d", appid),
		"top_100": "/steam_api/game_list",
	}
	if len(tags) > 0 {
		links["by_tag"] = "/steam_api/game_list_by_tag/" + url.PathEscape(tags[0])
	}
	return links
}

// paginate slices appids to [(page-1)*perPage, page*perPage). Out-of-range
// pages yield an empty slice.
func paginate(appids []int64, page, perPage int, base string) *Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	total := len(appids)
	lo := (page - 1) * perPage
	hi := page * perPage
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	slice := appids[lo:hi]
	if slice == nil {
		slice = []int64{}
	}

	links := Links{"self": pageLink(base, page, perPage)}
	if page > 1 {
		links["prev"] = pageLink(base, page-1, perPage)
	}
	if page*perPage < total {
		links["next"] = pageLink(base, page+1, perPage)
	}

	return &Page{
		AppIDs:  slice,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Links:   links,
	}
}

func pageLink(base string, page, perPage int) string {
	return fmt.Sprintf("%s?page=%d&per_page=%d", base, page, perPage)
}

// asInt64 and asString normalize driver-dependent scan types coming out of
// the row maps.
func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	case uint64:
		return int64(n)
	default:
		return 0
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return ""
}
