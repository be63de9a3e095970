package main

import (
	"flag"
	"os"

	"uno/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment file, built-in defaults when empty")
	games := flag.Int("games", 0, "Rounds per agent configuration, overrides the file when positive")
	debug := flag.Bool("debug", false, "Log every move and search")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	config := experiments.Default()
	if *configPath != "" {
		var err error
		config, err = experiments.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load experiment")
		}
	}
	if *games > 0 {
		config.Games = *games
	}

	results, err := experiments.Run(config)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	log.Info().Msgf("finished %d rounds, results in %s", len(results.Games), results.Dir)
}
