// Package syncer reconciles the stored catalog with the external top-100
// ranking on a fixed schedule.
package syncer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"steamcatalog/backend/internal/database"
	"steamcatalog/backend/internal/models"
	"steamcatalog/backend/internal/steam"
)

// RankedOut is the sentinel ranking for games that dropped out of the
// visible top-100 window. Distinct from "never ranked" (NULL).
const RankedOut = 101

// Source is the external ranking API the engine pulls from.
type Source interface {
	TopGames(ctx context.Context) ([]int64, error)
	GameDetail(ctx context.Context, appid int64) (*steam.Detail, error)
}

// Engine runs sync cycles against the injected store. Cycles are serialized;
// a trigger that fires while one is still running is skipped.
type Engine struct {
	store  *database.Store
	source Source
	logger *log.Logger

	mu sync.Mutex
}

func New(store *database.Store, source Source, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{store: store, source: source, logger: logger}
}

// Run executes one full sync cycle: fetch the ranked list, demote every
// stored game to the sentinel rank, then upsert each listed game with its
// new rank and reconcile its tags. A single game's detail-fetch failure is
// logged and skipped; any store failure aborts the rest of the cycle,
// leaving rows committed by earlier steps intact.
func (e *Engine) Run(ctx context.Context) error {
	if !e.mu.TryLock() {
		e.logger.Println("sync: previous cycle still running, skipping")
		return nil
	}
	defer e.mu.Unlock()

	e.logger.Println("sync: fetching top 100 games")
	appids, err := e.source.TopGames(ctx)
	if err != nil {
		e.logger.Printf("sync: %v", err)
		return err
	}

	// Demote everything first so games absent from the new list end the
	// cycle at RankedOut instead of keeping a stale rank.
	if err := e.store.Update(ctx, models.TableGames, models.Ranking(RankedOut).Map(), nil); err != nil {
		e.logger.Printf("sync: rank reset failed: %v", err)
		return fmt.Errorf("reset rankings: %w", err)
	}

	for i, appid := range appids {
		rank := i + 1
		detail, err := e.source.GameDetail(ctx, appid)
		if err != nil {
			e.logger.Printf("sync: skipping game %d: %v", appid, err)
			continue
		}
		if err := e.syncGame(ctx, detail, rank); err != nil {
			e.logger.Printf("sync: aborting cycle at game %d: %v", appid, err)
			return err
		}
	}

	e.logger.Printf("sync: cycle complete, %d games in list", len(appids))
	return nil
}

// syncGame upserts one game row at the given rank and brings tags and
// associations up to date. Store failures here are fatal to the cycle.
func (e *Engine) syncGame(ctx context.Context, detail *steam.Detail, rank int) error {
	exists, err := e.store.Exists(ctx, models.TableGames, models.AppID(detail.AppID).Map())
	if err != nil {
		return err
	}
	if exists {
		err = e.store.Update(ctx, models.TableGames,
			models.Ranking(rank).Map(), models.AppID(detail.AppID).Map())
	} else {
		err = e.store.BulkInsert(ctx, models.TableGames,
			[]database.Row{models.GameRow(detail.AppID, detail.Name, rank)})
	}
	if err != nil {
		return err
	}

	if err := e.insertNewTags(ctx, detail); err != nil {
		return err
	}
	return e.insertAssociations(ctx, detail)
}

// insertNewTags batch-inserts every tag name the store has not seen yet.
// Tags inserted for earlier games in the same cycle are caught by the
// existence check, so a shared tag is created at most once.
func (e *Engine) insertNewTags(ctx context.Context, detail *steam.Detail) error {
	var rows []database.Row
	for name := range detail.Tags {
		exists, err := e.store.Exists(ctx, models.TableTags, models.TagName(name).Map())
		if err != nil {
			return err
		}
		if !exists {
			rows = append(rows, models.TagRow(name))
		}
	}
	return e.store.BulkInsert(ctx, models.TableTags, rows)
}

// insertAssociations stages every (appid, tag_id) pair the game carries but
// the store lacks, then writes them in one batch. Associations are never
// removed when a later cycle drops a tag.
func (e *Engine) insertAssociations(ctx context.Context, detail *steam.Detail) error {
	var rows []database.Row
	for name, weight := range detail.Tags {
		tagRows, err := e.store.Query(ctx, models.TableTags,
			[]string{"tag_id"}, models.TagName(name).Map())
		if err != nil {
			return err
		}
		if len(tagRows) == 0 {
			return fmt.Errorf("tag %q missing after insert", name)
		}
		tagID := asInt64(tagRows[0]["tag_id"])

		exists, err := e.store.Exists(ctx, models.TableGameTags,
			models.GameTagKey{AppID: detail.AppID, TagID: tagID}.Map())
		if err != nil {
			return err
		}
		if !exists {
			rows = append(rows, models.AssociationRow(detail.AppID, tagID, weight))
		}
	}
	return e.store.BulkInsert(ctx, models.TableGameTags, rows)
}

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
	default:
		return 0
	}
}
