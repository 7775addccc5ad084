package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"docqa/app/server"
	"docqa/types"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using environment as-is")
	}
	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	s := server.NewServer(types.LoadConfig())
	go func() {
		if err := s.Run(); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	<-sigch
	log.Info().Msg("received shutdown signal, shutting down server")
	s.Stop()
}
