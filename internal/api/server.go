package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pracazumbi/presenca-api/docs"
	v1 "github.com/pracazumbi/presenca-api/internal/api/handler/v1"
	"github.com/pracazumbi/presenca-api/internal/api/middleware"
	"github.com/pracazumbi/presenca-api/internal/config"
	"github.com/pracazumbi/presenca-api/internal/ingest"
	"github.com/pracazumbi/presenca-api/internal/service"
)

type Server struct {
	Config    *config.AppConfig
	Router    *gin.Engine
	Dashboard *service.DashboardService
}

// NewServer wires the dashboard on top of reader. writer may be nil, in
// which case imports answer 501.
func NewServer(conf *config.AppConfig, reader service.AttendanceReader, writer service.AttendanceWriter) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	dashboardHandler := s.initDashboardHandler(reader)
	importHandler := s.initImportHandler(writer)
	s.MountHandlers(dashboardHandler, importHandler)

	return s
}

// DashboardSettings converts the dashboard section of the configuration.
func DashboardSettings(conf *config.DashboardConfig) service.Settings {
	return service.Settings{
		DefaultLimit:           conf.DefaultLimit,
		MaxLimit:               conf.MaxLimit,
		RankingSize:            conf.RankingSize,
		EncouragementThreshold: conf.EncouragementThreshold,
		Signature:              conf.Signature,
	}
}

// IngestOptions converts the source section of the configuration.
func IngestOptions(conf *config.SourceConfig) ingest.Options {
	return ingest.Options{
		Separator:     conf.SeparatorRune(),
		Encoding:      conf.Encoding,
		Dedupe:        conf.Dedupe,
		SkipMalformed: conf.SkipMalformed,
	}
}

func (s *Server) initDashboardHandler(reader service.AttendanceReader) *v1.DashboardHandler {
	s.Dashboard = service.NewDashboardService(reader, DashboardSettings(s.Config.Dashboard))
	handler := v1.NewDashboardHandler(s.Dashboard)

	return handler
}

func (s *Server) initImportHandler(writer service.AttendanceWriter) *v1.ImportHandler {
	svc := service.NewImportService(writer, IngestOptions(s.Config.Source))
	handler := v1.NewImportHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(dashboardHandler *v1.DashboardHandler, importHandler *v1.ImportHandler) {
	const basePath = "/api/v1"

	dashboard := s.Router.Group(basePath)
	{
		dashboard.GET("/metrics", dashboardHandler.HandleGetMetrics)
		dashboard.GET("/overview", dashboardHandler.HandleGetOverview)
		dashboard.GET("/ranking", dashboardHandler.HandleGetRanking)
		dashboard.GET("/stats/exercises", dashboardHandler.HandleGetExerciseStats)
		dashboard.GET("/stats/daily", dashboardHandler.HandleGetDailyStats)
	}

	participants := s.Router.Group(basePath + "/participants/:participantID")
	{
		participants.GET("/metrics", dashboardHandler.HandleGetParticipantMetrics)
		participants.GET("/evolution", dashboardHandler.HandleGetEvolution)
		participants.GET("/encouragement", dashboardHandler.HandleGetEncouragement)
	}

	imports := s.Router.Group(basePath)
	{
		imports.POST("/imports", importHandler.HandleImport)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Praça Presença API"
	docs.SwaggerInfo.Description = "Attendance metrics and disengagement risk for community exercise classes."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
