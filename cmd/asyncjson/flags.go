package main

import (
	"time"

	"gopkg.in/urfave/cli.v1"
)

func serverFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "addr",
			Usage: "Address to listen on",
			Value: "127.0.0.1:8080",
		},
		cli.StringSliceFlag{
			Name:  "autocert",
			Usage: "Serve TLS with ACME certificates issued for the domain (may be repeated)",
		},
		cli.IntFlag{
			Name:  "maxconns",
			Usage: "Maximal number of simultaneously served connections",
			Value: 16,
		},
		cli.Uint64Flag{
			Name:  "json.entry.max",
			Usage: "Body size limit for endpoints receiving whole documents, bytes",
			Value: 8096,
		},
		cli.Uint64Flag{
			Name:  "json.fragment.max",
			Usage: "Body size limit for endpoints receiving fragments, bytes",
			Value: 16384,
		},
		cli.Uint64Flag{
			Name:  "json.memory",
			Usage: "Memory limit for all the request bodies being held at once, bytes",
			Value: 256 * 1024,
		},
		cli.StringFlag{
			Name:  "delivery",
			Usage: "Fragment delivery strategy (single|sliced)",
			Value: "sliced",
		},
		cli.IntFlag{
			Name:  "delivery.slice",
			Usage: "Fragment size of the sliced delivery, bytes",
			Value: 768,
		},
		cli.DurationFlag{
			Name:  "delivery.delay",
			Usage: "Pause between two fragments of the sliced delivery",
			Value: 5 * time.Millisecond,
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.StringFlag{
			Name:  "log.level",
			Usage: "Logging level (panic|fatal|error|warn|info|debug|trace)",
			Value: "info",
		},
	}
}
