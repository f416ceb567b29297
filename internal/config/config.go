// Package config defines the node's startup configuration and the
// urfave/cli/v2 flag set that populates it, following this codebase's
// existing command-line wiring style.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

// Config is everything cmd/beaconnode needs to stand up a node.
type Config struct {
	SelfURL    string
	Peers      []string
	OpeningTTL time.Duration
	ListenAddr string
}

// Flags returns the urfave/cli flag set backing Config.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "self-url",
			Usage:    "this node's own advertised address, must appear in --peers",
			EnvVars:  []string{"BEACON_SELF_URL"},
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:     "peers",
			Usage:    "comma-separated ordered list of every node URL in the cohort, including self",
			EnvVars:  []string{"BEACON_PEERS"},
			Required: true,
		},
		&cli.DurationFlag{
			Name:    "opening-ttl",
			Usage:   "lifetime of a stored opening before it becomes not_found",
			EnvVars: []string{"BEACON_OPENING_TTL"},
			Value:   5 * time.Minute,
		},
		&cli.StringFlag{
			Name:    "listen-addr",
			Usage:   "address this node's HTTP server binds to",
			EnvVars: []string{"BEACON_LISTEN_ADDR"},
			Value:   ":8080",
		},
	}
}

// FromContext builds a Config from a populated cli.Context, splitting
// any comma-joined --peers entries (StringSliceFlag accepts the flag
// repeated or comma-separated) and rejecting an empty cohort.
func FromContext(c *cli.Context) (Config, error) {
	var peers []string
	for _, raw := range c.StringSlice("peers") {
		for _, p := range strings.Split(raw, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				peers = append(peers, p)
			}
		}
	}
	if len(peers) == 0 {
		return Config{}, fmt.Errorf("config: --peers must list at least this node's own url")
	}

	return Config{
		SelfURL:    c.String("self-url"),
		Peers:      peers,
		OpeningTTL: c.Duration("opening-ttl"),
		ListenAddr: c.String("listen-addr"),
	}, nil
}
