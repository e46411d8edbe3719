package main

import (
	"fmt"
	"os"

	"github.com/evanharte/crewplan/internal/cli"
	"github.com/evanharte/crewplan/internal/config"
	"github.com/evanharte/crewplan/internal/db"
	"github.com/evanharte/crewplan/internal/logging"
	"github.com/evanharte/crewplan/internal/repository"
	"github.com/evanharte/crewplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("CREWPLAN_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := logging.New(cfg.Logging.Level, os.Stderr)

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug().Str("path", cfg.DB.Path).Msg("database opened")

	planRepo := repository.NewSQLitePlanRepo(database)
	memberRepo := repository.NewSQLiteTeamMemberRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	scheduleSvc := service.NewScheduleService(planRepo, memberRepo, projectRepo, service.ScheduleOptions{
		MaxIterations: cfg.Schedule.MaxIterations,
		LinkBaseURL:   cfg.Schedule.LinkBaseURL,
		Logger:        &logger,
	})

	app := &cli.App{
		Plans:    service.NewPlanService(planRepo),
		Members:  service.NewTeamMemberService(memberRepo),
		Projects: service.NewProjectService(projectRepo),
		Schedule: scheduleSvc,
		Import:   service.NewImportService(uow, planRepo, memberRepo, projectRepo),
	}

	return cli.NewRootCmd(app).Execute()
}
