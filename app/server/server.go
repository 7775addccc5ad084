package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"docqa/app/agent"
	"docqa/app/api"
	"docqa/app/middleware"
	"docqa/loader"
	"docqa/pipeline"
	"docqa/types"
)

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
}

type Server struct {
	cfg types.Config
	app *fiber.App
}

func NewServer(cfg types.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	completer, err := agent.NewLangChainCompleter(s.cfg)
	if err != nil {
		return err
	}

	var (
		docLoader = loader.NewDocumentLoader(
			loader.NewHTTPFetcher(s.cfg.FetchTimeout),
			loader.NewPDFExtractor(),
		)
		pipe         = pipeline.New(agent.New(completer), s.cfg)
		runHandler   = api.NewRunHandler(docLoader, pipe)
		checkHandler = api.NewCheckHandler(s.cfg.LLMAPIKey != "")
		app          = fiber.New(config)
		run          = app.Group("/hackrx", middleware.BearerAuth())
	)

	app.Get("/", checkHandler.HandleRoot)
	app.Get("/health", checkHandler.HandleHealthy)
	run.Post("/run", runHandler.HandleRun)

	s.app = app
	log.Info().Str("addr", s.cfg.ServerAddr).Msg("server listening")
	return app.Listen(s.cfg.ServerAddr)
}

func (s *Server) Stop() {
	if s.app != nil {
		if err := s.app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("error shutting down server")
		}
	}
	log.Info().Msg("server stopped")
}
