package main

import (
	"fmt"

	"github.com/animalloo/animalloo"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	origin := animalloo.GeoPoint{Lat: c.Lat, Lon: c.Lon}

	results, err := deps.Service.Search(deps.Ctx, c.Query, origin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", animalloo.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No facilities found within range.")
		return nil
	}

	for _, r := range results {
		addr := r.RoadAddress
		if addr == "" {
			addr = r.LotAddress
		}
		fmt.Fprintf(deps.Stdout, "%.2fkm  %-12s  %s  %s\n", r.DistanceKm, r.Category, r.Name, addr)
	}

	return nil
}
