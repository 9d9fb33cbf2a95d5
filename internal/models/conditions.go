package models

// Typed builders for store conditions and payloads. Every adapter call is
// constructed from one of these instead of an ad hoc map, so a typo in a
// column name is a compile error rather than a malformed statement.

// TableGames, TableTags and TableGameTags name the tables the adapter
// operates on.
const (
	TableGames    = "games"
	TableTags     = "game_tags"
	TableGameTags = "tags_of_games"
)

// AppID selects rows by Steam app id, on `games` or `tags_of_games`.
type AppID int64

func (a AppID) Map() map[string]any { return map[string]any{"appid": int64(a)} }

// GameName selects a game row by exact name.
type GameName string

func (n GameName) Map() map[string]any { return map[string]any{"name": string(n)} }

// TagName selects a tag row by its unique name.
type TagName string

func (n TagName) Map() map[string]any { return map[string]any{"tag_name": string(n)} }

// TagID selects rows by tag id, on `game_tags` or `tags_of_games`.
type TagID int64

func (t TagID) Map() map[string]any { return map[string]any{"tag_id": int64(t)} }

// GameTagKey is the composite key of one game/tag association.
type GameTagKey struct {
	AppID int64
	TagID int64
}

func (k GameTagKey) Map() map[string]any {
	return map[string]any{"appid": k.AppID, "tag_id": k.TagID}
}

// Ranking is the SET payload for ranking updates, including the global
// demotion to the sentinel value at the start of a sync cycle.
type Ranking int

func (r Ranking) Map() map[string]any { return map[string]any{"ranking": int(r)} }

// GameRow builds the insert payload for a newly sighted game.
func GameRow(appid int64, name string, ranking int) map[string]any {
	return map[string]any{"appid": appid, "name": name, "ranking": ranking}
}

// TagRow builds the insert payload for a previously unseen tag name.
func TagRow(name string) map[string]any {
	return map[string]any{"tag_name": name}
}

// AssociationRow builds the insert payload for a new game/tag association.
func AssociationRow(appid, tagID int64, weight float64) map[string]any {
	return map[string]any{"appid": appid, "tag_id": tagID, "weight": weight}
}
