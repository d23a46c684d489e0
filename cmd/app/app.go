package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pracazumbi/presenca-api/internal/api"
	"github.com/pracazumbi/presenca-api/internal/config"
	"github.com/pracazumbi/presenca-api/internal/db"
	"github.com/pracazumbi/presenca-api/internal/logger"
	"github.com/pracazumbi/presenca-api/internal/repository"
	"github.com/pracazumbi/presenca-api/internal/repository/dao"
	"github.com/pracazumbi/presenca-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}

	reader, writer, err := openSource(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize data source -> %w", err)
	}

	s := api.NewServer(conf, reader, writer)

	config.Watch(func(updated *config.AppConfig) {
		s.Dashboard.UpdateSettings(api.DashboardSettings(updated.Dashboard))
		if err := logger.SetLevel(updated.API.LogLevel); err != nil {
			zap.L().Warn("keeping previous log level", zap.Error(err))
		}
	})

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr), zap.String("source", conf.Source.Kind))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// openSource returns a nil writer for the csv source, which is read only.
func openSource(conf *config.AppConfig) (service.AttendanceReader, service.AttendanceWriter, error) {
	if conf.Source.Kind == config.SourceCSV {
		return repository.NewCSVRepository(conf.Source.CSVPath, api.IngestOptions(conf.Source)), nil, nil
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	var err error
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	repo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(postgresDB))

	return repo, repo, nil
}
