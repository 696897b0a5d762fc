package main

import (
	"fmt"
	"os"

	"github.com/indigo-web/asyncjson/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"
)

func makeConfig(ctx *cli.Context) *config.Config {
	cfg := config.Default()

	if ctx.IsSet("maxconns") {
		cfg.NET.MaxConns = ctx.Int("maxconns")
	}
	if ctx.IsSet("json.entry.max") {
		cfg.JSON.EntryMaxSize = ctx.Uint64("json.entry.max")
	}
	if ctx.IsSet("json.fragment.max") {
		cfg.JSON.FragmentMaxSize = ctx.Uint64("json.fragment.max")
	}
	if ctx.IsSet("json.memory") {
		cfg.JSON.MemoryLimit = ctx.Uint64("json.memory")
	}
	if ctx.IsSet("delivery") {
		cfg.Delivery.Strategy = config.Strategy(ctx.String("delivery"))
	}
	if ctx.IsSet("delivery.slice") {
		cfg.Delivery.SliceSize = ctx.Int("delivery.slice")
	}
	if ctx.IsSet("delivery.delay") {
		cfg.Delivery.Delay = ctx.Duration("delivery.delay")
	}

	return cfg
}

func makeLogger(ctx *cli.Context) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(ctx.String("log.level"))
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	switch format := ctx.String("log.format"); format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format: %q", format)
	}

	return log, nil
}
