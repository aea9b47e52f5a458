package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agricola/board"
	"agricola/config"
	"agricola/deck"
	"agricola/engine"
	"agricola/gamelog"
	"agricola/store"
)

func main() {
	configPath := flag.String("config", "", "YAML board setup, defaults used when empty")
	cardDir := flag.String("cards", "", "directory of Lua card scripts to deal into the hand")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random driver seed")
	steps := flag.Int("steps", 40, "number of random actions to attempt")
	storePath := flag.String("store", "", "sqlite file to snapshot the final board into")
	logPath := flag.String("gamelog", "", "CSV file to record every action into")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(*configPath, *cardDir, *seed, *steps, *storePath, *logPath); err != nil {
		log.Fatal().Err(err).Msg("session failed")
	}
}

func run(configPath, cardDir string, seed uint64, steps int, storePath, logPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	player, err := cfg.NewPlayer("demo")
	if err != nil {
		return err
	}

	if cardDir != "" {
		cards, err := deck.LoadDir(cardDir)
		if err != nil {
			return err
		}
		for _, c := range cards {
			player.GiveCards(c.Kind(), c)
		}
		log.Info().Int("cards", len(cards)).Str("dir", cardDir).Msg("dealt scripted cards")
	}

	var options []engine.Option
	if logPath != "" {
		w, err := gamelog.NewWriter(logPath)
		if err != nil {
			return err
		}
		defer w.Close()
		options = append(options, engine.WithGameLog(w))
	}
	session := engine.NewSession(player, options...)

	driver := engine.NewRandomDriver(seed)
	accepted := driver.Play(session, steps)
	log.Info().Int("attempted", steps).Int("accepted", accepted).Uint64("seed", seed).Msg("random session done")

	fmt.Println(board.Draw(player))

	if storePath != "" {
		db, err := store.Open(storePath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.CreateSession(player.Name)
		if err != nil {
			return err
		}
		if err := db.SaveSnapshot(id, store.Capture(player, steps)); err != nil {
			return err
		}
		log.Info().Str("session", id).Str("store", storePath).Msg("final board snapshotted")
	}
	return nil
}
