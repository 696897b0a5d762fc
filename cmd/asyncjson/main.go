// Command asyncjson serves a couple of demo JSON endpoints:
//
//	POST /api/echo     answers with the very same document
//	POST /api/ingest   consumes the body fragment by fragment and reports what it got
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/indigo-web/asyncjson/server"
	"gopkg.in/urfave/cli.v1"
)

func main() {
	app := cli.NewApp()
	app.Name = "asyncjson"
	app.Usage = "chunked streaming JSON interchange server"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.Flags = serverFlags()
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx *cli.Context) error {
	log, err := makeLogger(ctx)
	if err != nil {
		return err
	}

	opts := []server.Option{server.WithLogger(log)}
	if domains := ctx.StringSlice("autocert"); len(domains) > 0 {
		opts = append(opts, server.WithAutoTLS(domains...))
	}

	s, err := server.New(makeConfig(ctx), opts...)
	if err != nil {
		return err
	}

	s.Entry("/api/echo", echo)
	s.Fragment("/api/ingest", ingest)

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.ListenAndServe(sigctx, ctx.String("addr"))
}
