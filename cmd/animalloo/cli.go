package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/animalloo/animalloo"
	animhttp "github.com/animalloo/animalloo/http"
	"github.com/animalloo/animalloo/search"
	"github.com/animalloo/animalloo/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Facilities animalloo.FacilityService
	Service    *search.Service
	Importer   *sqlite.Importer
	Metrics    *animhttp.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve     ServeCmd     `cmd:"" help:"Run the HTTP search server"`
	Search    SearchCmd    `cmd:"" help:"Run a one-shot search from the command line"`
	Import    ImportCmd    `cmd:"" help:"Import a facility or district CSV file into the catalog"`
	Districts DistrictsCmd `cmd:"" help:"List districts known to the catalog"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"ANIMALLOO_ADDR" help:"HTTP listen address"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string  `arg:"" help:"Natural language query, e.g. '근처 24시 동물병원'"`
	Lat   float64 `default:"37.5663" help:"Origin latitude"`
	Lon   float64 `default:"126.9779" help:"Origin longitude"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path      string `arg:"" type:"existingfile" help:"CSV file to import"`
	Districts bool   `help:"Import district centroids instead of facilities"`
}

// DistrictsCmd is the "districts" subcommand.
type DistrictsCmd struct{}
