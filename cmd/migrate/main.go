package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/erp/fulfillment-router/internal/infrastructure/config"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"github.com/erp/fulfillment-router/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var errUsage = errors.New("invalid usage")

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Migrations directory (default: migrations embedded in the binary)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

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
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(log, migrationsPath, args); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
		}
		log.Error("Migration command failed", zap.String("command", args[0]), zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}
}

func run(log *zap.Logger, migrationsPath string, args []string) error {
	command, rest := args[0], args[1:]
	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	// create and list work on the source directory and need no database
	switch command {
	case "create":
		return createMigration(log, dirOrDefault(migrationsPath), rest)
	case "list":
		return listMigrations(dirOrDefault(migrationsPath))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	var opts []migration.Option
	if migrationsPath != "" {
		opts = append(opts, migration.WithMigrationsPath(migrationsPath))
	}
	m, err := migration.New(db, log, opts...)
	if err != nil {
		return err
	}
	defer m.Close()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(rest, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(rest, "version")
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: version must not be negative", errUsage)
		}
		return m.GoTo(uint(n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
		return nil
	case "force":
		n, err := intArg(rest, "version")
		if err != nil {
			return err
		}
		return m.Force(n)
	case "drop":
		if !slices.Contains(rest, "-confirm") && !slices.Contains(rest, "--confirm") {
			return fmt.Errorf("%w: drop requires -confirm", errUsage)
		}
		return m.Drop()
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func createMigration(log *zap.Logger, dir string, rest []string) error {
	if len(rest) == 0 {
		return fmt.Errorf("%w: create requires a migration name", errUsage)
	}
	description := ""
	if len(rest) > 1 {
		description = rest[1]
	}

	mf, err := migration.CreateMigration(dir, rest[0], description)
	if err != nil {
		return err
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func listMigrations(dir string) error {
	names, err := migration.ListMigrations(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No migrations found in", dir)
		return nil
	}
	for _, name := range names {
		fmt.Println("  -", name)
	}
	return nil
}

func intArg(rest []string, what string) (int, error) {
	if len(rest) == 0 {
		return 0, fmt.Errorf("%w: %s required", errUsage, what)
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", errUsage, what, rest[0])
	}
	return n, nil
}

func dirOrDefault(path string) string {
	if path == "" {
		return defaultMigrationsDir
	}
	return path
}

func printUsage() {
	fmt.Println(`Fulfillment Router Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version (repairs a dirty database)
  drop -confirm         Drop all database objects
  create <name> [desc]  Create the next migration file pair
  list                  List available migrations

Flags:
  -path string          Migrations directory (default: embedded; ./migrations for create/list)
  -log-level string     Log level: debug, info, warn, error (default: info)

Database settings come from config.toml or FR_DATABASE_* environment variables.`)
}
