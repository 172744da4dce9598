package main

import (
	"database/sql"
	"flag"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/db"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, or reset")
		dir     = flag.String("dir", "", "Directory containing migration files (defaults to the embedded set)")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "migrator").Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	pg, err := config.LoadPostgres()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load postgres config")
	}

	migrationDir := db.MigrationsDir
	if *dir != "" {
		migrationDir, err = filepath.Abs(*dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", *dir).Msg("failed to resolve migration directory")
		}
		if _, err := os.Stat(migrationDir); os.IsNotExist(err) {
			log.Fatal().Str("dir", migrationDir).Msg("migration directory does not exist")
		}
		goose.SetBaseFS(nil)
	} else {
		goose.SetBaseFS(db.Migrations)
	}

	conn, err := sql.Open("pgx", pg.ConnString())
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("failed to open database connection")
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("database", pg.Database).
		Str("migration_dir", migrationDir).
		Msg("connected to database")

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("failed to set goose dialect")
	}
	goose.SetTableName("goose_db_version")

	switch *command {
	case "up":
		if err := goose.Up(conn, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations up")
		}
		log.Info().Msg("migrations applied successfully")

	case "down":
		if err := goose.Down(conn, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations down")
		}
		log.Info().Msg("migrations rolled back successfully")

	case "status":
		if err := goose.Status(conn, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to get migration status")
		}

	case "reset":
		if err := goose.Reset(conn, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to reset migrations")
		}
		log.Info().Msg("migrations reset")

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, status, or reset")
	}
}
