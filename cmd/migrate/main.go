package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to the migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}
	log = log.With(zap.String("command", command), zap.String("migrations_path", absPath))

	// create and list work on files only
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		f, err := migration.CreateMigration(absPath, args[1], description, time.Now())
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created", zap.String("up", f.UpPath), zap.String("down", f.DownPath))
		return
	case "list":
		names, err := migration.ListMigrations(absPath)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		log.Info("Migrations listed", zap.Int("count", len(names)))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to reach database", zap.Error(err))
	}

	m, err := migration.New(db, absPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down(intArg(log, args, "step count", 1))
	case "step":
		err = m.Steps(intArg(log, args, "step count", 0))
	case "goto":
		err = m.GoTo(uint(intArg(log, args, "version", 0)))
	case "force":
		err = m.Force(intArg(log, args, "version", 0))
	case "version":
		version, dirty, verr := m.Version()
		if verr == nil {
			log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		err = verr
	default:
		log.Error("Unknown command")
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
}

// intArg parses args[1]; fallback applies when the argument is optional and
// absent, a zero fallback makes it required
func intArg(log *zap.Logger, args []string, what string, fallback int) int {
	if len(args) < 2 {
		if fallback != 0 {
			return fallback
		}
		log.Fatal(what + " required")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatal("Invalid "+what, zap.String("value", args[1]))
	}
	return n
}

func printUsage() {
	fmt.Println(`VendorHub database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down [n]              Roll back the last n migrations (default 1)
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the applied version
  force <version>       Mark a version as applied after a manual repair
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations

Flags:
  -path string          Path to the migrations directory (default: ./migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

The database connection comes from config.toml and VH_DATABASE_* variables.`)
}
