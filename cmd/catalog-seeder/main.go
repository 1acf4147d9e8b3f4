package main

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/radieske/sportsbook-catalog-service/internal/catalog-service/repo"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/config"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/db"
	"github.com/radieske/sportsbook-catalog-service/internal/shared/logger"
)

// catalog-seeder cria o schema do catálogo e, opcionalmente, carrega uma
// massa de exemplo (esportes, eventos e seleções) pra ambiente local/demo
func main() {
	cfg := config.Load()
	log, err := logger.New("catalog-seeder", cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	var conn *sql.DB
	dialect := repo.DialectPostgres
	switch cfg.DBDriver {
	case "postgres":
		conn, err = db.ConnectPostgres(cfg.PostgresDSN)
	case "sqlite":
		dialect = repo.DialectSQLite
		conn, err = db.OpenSQLite(cfg.SQLitePath)
	default:
		log.Fatal("unknown DB_DRIVER", zap.String("driver", cfg.DBDriver))
	}
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer conn.Close()

	ctx := context.Background()

	if err := db.Migrate(ctx, conn, cfg.DBDriver); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	log.Info("schema ready")

	if !cfg.SeedSample {
		return
	}

	store := repo.NewStore(conn, dialect)

	// Não duplica a massa se o banco já tem catálogo
	existing, err := store.SearchSports(ctx, repo.SportFilters{})
	if err != nil {
		log.Fatal("check existing catalog", zap.Error(err))
	}
	if len(existing) > 0 {
		log.Info("catalog already populated, skipping sample data",
			zap.Int("sports", len(existing)))
		return
	}

	if err := seed(ctx, store); err != nil {
		log.Fatal("seed sample data", zap.Error(err))
	}
	log.Info("sample data loaded")
}

func seed(ctx context.Context, store *repo.Store) error {
	football, err := store.CreateSport(ctx, repo.Sport{Name: "Football", Slug: "football", Active: true})
	if err != nil {
		return err
	}
	basketball, err := store.CreateSport(ctx, repo.Sport{Name: "Basketball", Slug: "basketball", Active: true})
	if err != nil {
		return err
	}
	if _, err := store.CreateSport(ctx, repo.Sport{Name: "Tennis", Slug: "tennis", Active: false}); err != nil {
		return err
	}

	uefa, err := store.CreateEvent(ctx, repo.Event{
		Name:           "UEFA Europa League",
		Slug:           "uefa-europa-league",
		Active:         true,
		Type:           repo.EventTypePreplay,
		SportID:        football,
		Status:         repo.EventStatusPending,
		ScheduledStart: "2023-07-10 20:00:00",
	})
	if err != nil {
		return err
	}

	nbaStart := "2023-06-01 19:35:00"
	nba, err := store.CreateEvent(ctx, repo.Event{
		Name:           "NBA Finals",
		Slug:           "nba-finals",
		Active:         true,
		Type:           repo.EventTypeInplay,
		SportID:        basketball,
		Status:         repo.EventStatusStarted,
		ScheduledStart: "2023-06-01 19:30:00",
		ActualStart:    &nbaStart,
	})
	if err != nil {
		return err
	}

	selections := []repo.Selection{
		{Name: "Man Utd Win", EventID: uefa, Price: 1.9, Active: true, Outcome: repo.OutcomeUnsettled},
		{Name: "Draw", EventID: uefa, Price: 3.4, Active: true, Outcome: repo.OutcomeUnsettled},
		{Name: "AC Milan Win", EventID: uefa, Price: 4.0, Active: true, Outcome: repo.OutcomeUnsettled},
		{Name: "Lakers Win", EventID: nba, Price: 1.6, Active: true, Outcome: repo.OutcomeUnsettled},
		{Name: "Heat Win", EventID: nba, Price: 2.2, Active: false, Outcome: repo.OutcomeUnsettled},
	}
	for _, sel := range selections {
		if _, err := store.CreateSelection(ctx, sel); err != nil {
			return err
		}
	}
	return nil
}
