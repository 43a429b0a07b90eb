package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	sqlitecatalog "pillforge/internal/adapter/catalog/sqlite"
	httpadapter "pillforge/internal/adapter/http"
	metricsinmem "pillforge/internal/adapter/metrics/inmemory"
	gormrepo "pillforge/internal/adapter/repo/gorm"
	"pillforge/internal/adapter/repo/memory"
	"pillforge/internal/app/history"
	"pillforge/internal/app/intake"
	"pillforge/internal/app/ports"
	"pillforge/internal/app/profiles"
	"pillforge/internal/app/recommend"
	"pillforge/internal/domain/craft"
	"pillforge/internal/domain/planner"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	profileRepo, logRepo, txManager := mustBuildRepos()
	catalog := buildCatalogFromEnv()
	kpiRecorder := metricsinmem.NewRecorder()
	engine := planner.New(craft.NewService())

	seedDefaultProfile(profileRepo)

	h := httpadapter.Handler{
		RecommendUC: recommend.UseCase{
			Planner:  engine,
			Profiles: profileRepo,
			Log:      logRepo,
			Metrics:  kpiRecorder,
		},
		IntakeUC:   intake.UseCase{Catalog: catalog},
		ProfilesUC: profiles.UseCase{Tx: txManager, Repo: profileRepo},
		HistoryUC:  history.UseCase{Log: logRepo},
		KPI:        kpiRecorder,
	}

	addr := envOr("PILLFORGE_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("pillforge server listening on %s", addr)
	s.Spin()
}

func mustBuildRepos() (ports.ProfileRepository, ports.RecommendationLogRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("PILLFORGE_DB_DSN"))
	if dsn == "" {
		log.Println("PILLFORGE_DB_DSN not set, using in-memory repositories")
		store := memory.NewStore()
		return memory.NewProfileRepo(store), memory.NewRecommendationLogRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewProfileRepo(db), gormrepo.NewRecommendationLogRepo(db), gormrepo.NewTxManager(db)
}

func buildCatalogFromEnv() ports.CatalogProvider {
	path := strings.TrimSpace(os.Getenv("PILLFORGE_CATALOG_DB"))
	if path == "" {
		log.Println("PILLFORGE_CATALOG_DB not set, intake runs without catalog completion")
		return nil
	}

	store, err := sqlitecatalog.Open(path)
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}
	ctx := context.Background()
	if seed := strings.TrimSpace(os.Getenv("PILLFORGE_CATALOG_SEED")); seed != "" {
		if err := store.ImportFile(ctx, seed); err != nil {
			log.Fatalf("import catalog seed: %v", err)
		}
	}
	if err := store.SeedDefaults(ctx); err != nil {
		log.Fatalf("seed catalog defaults: %v", err)
	}
	return store
}

// seedDefaultProfile installs the "default" preset on first boot so
// clients can omit the profile field from day one. Existing rows win;
// a conflict just means another replica seeded first.
func seedDefaultProfile(repo ports.ProfileRepository) {
	ctx := context.Background()
	_, err := repo.GetByName(ctx, "default")
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.Fatalf("load default profile: %v", err)
	}

	cfg := planner.Config{
		Depth:        intEnv("PILLFORGE_SEARCH_DEPTH", planner.DefaultDepth),
		TimeBudgetMs: intEnv("PILLFORGE_TIME_BUDGET_MS", planner.DefaultTimeBudgetMs),
		MaxNodes:     intEnv("PILLFORGE_MAX_NODES", planner.DefaultMaxNodes),
		BeamWidth:    intEnv("PILLFORGE_BEAM_WIDTH", planner.DefaultBeamWidth),
	}.Clamped()
	rec := ports.EngineProfileRecord{
		Name:      "default",
		Config:    cfg,
		Version:   1,
		UpdatedAt: time.Now(),
	}
	if err := repo.SaveWithVersion(ctx, rec, 0); err != nil && !errors.Is(err, ports.ErrConflict) {
		log.Fatalf("seed default profile: %v", err)
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
