package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"playerapi/internal/config"
	"playerapi/internal/platform/logger"
	"playerapi/internal/player"
)

var (
	teams = []string{"Lions", "Tigers", "Eagles", "Sharks", "Royals", "Kings", "Titans", "Falcons"}
	first = []string{"Daniel", "Anna", "Rohit", "Hannah", "Shane", "Virat", "Joe", "Steve", "Kane", "Ben", "Jasprit", "Pat"}
	last  = []string{"Smith", "Root", "Sharma", "Warner", "Stokes", "Cummins", "Khan", "Williamson", "Lyon", "Bairstow"}
)

func main() {
	count := flag.Int("count", 1000, "number of players to insert")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	ctx := context.Background()
	log := logger.Init("info")

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "load config", logger.Error(err))
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Error(ctx, "failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	rows := generate(rand.New(rand.NewSource(*seed)), *count)

	log.Info(ctx, "inserting players", logger.Int("count", len(rows)))
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"players"},
		[]string{"name", "team", "runs", "salary"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		log.Error(ctx, "failed to insert players", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "players inserted", logger.Int64("rows", n))

	total, err := player.NewPostgresRepo(pool, cfg.DBTimeout).Count(ctx, player.Filter{})
	if err != nil {
		log.Error(ctx, "count players", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "total players in database", logger.Int("total", total))
}

// generate returns n rows of (name, team, runs, salary).
func generate(rng *rand.Rand, n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		name := fmt.Sprintf("%s %s", first[rng.Intn(len(first))], last[rng.Intn(len(last))])
		rows[i] = []any{
			name,
			teams[rng.Intn(len(teams))],
			rng.Intn(200),
			float64(50_000 + rng.Intn(950_000)),
		}
	}
	return rows
}
