// Command beaconnode runs a single node of a threshold random-beacon
// cohort: it serves the commit/co-commit/reveal protocol over HTTP
// against the peers named on its command line.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"threshold.network/randbeacon/internal/config"
	"threshold.network/randbeacon/internal/coordinator"
	"threshold.network/randbeacon/internal/directory"
	"threshold.network/randbeacon/internal/store"
	"threshold.network/randbeacon/internal/transport/httpapi"
	"threshold.network/randbeacon/internal/transport/httpclient"
)

func main() {
	app := &cli.App{
		Name:  "beaconnode",
		Usage: "run one node of a threshold Pedersen commit-reveal random beacon",
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "start serving the commit/co-commit/reveal protocol over HTTP",
				Flags: config.Flags(),
				Action: func(c *cli.Context) error {
					return run(c)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromContext(c)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("constructing logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	dir, err := directory.New(cfg.SelfURL, cfg.Peers)
	if err != nil {
		return fmt.Errorf("building directory: %w", err)
	}

	st := store.New(clockwork.NewRealClock(), cfg.OpeningTTL)
	go reapLoop(st, cfg.OpeningTTL, sugar)

	coord := coordinator.New(coordinator.Config{
		Directory:  dir,
		Store:      st,
		PeerClient: httpclient.New(httpclient.DefaultTimeout),
		Log:        sugar,
	})

	handler := httpapi.NewServer(coord, sugar)
	sugar.Infow("beaconnode starting",
		"self_url", cfg.SelfURL,
		"listen_addr", cfg.ListenAddr,
		"n", dir.Size(),
		"threshold", dir.Threshold(),
	)
	return http.ListenAndServe(cfg.ListenAddr, handler)
}

// reapLoop periodically clears expired openings so an abandoned
// session's LocalRecord does not outlive its TTL indefinitely waiting
// for a reveal that will never come.
func reapLoop(st *store.Store, ttl time.Duration, log *zap.SugaredLogger) {
	interval := ttl / 2
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if n := st.Reap(); n > 0 {
			log.Infow("reaped expired openings", "count", n)
		}
	}
}
