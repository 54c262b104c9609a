package main

import (
	"fmt"

	"github.com/animalloo/animalloo"
)

// Run executes the districts command.
func (c *DistrictsCmd) Run(deps *Dependencies) error {
	districts, err := deps.Facilities.FindDistricts(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", animalloo.ErrorMessage(err))
		return err
	}

	if len(districts) == 0 {
		fmt.Fprintln(deps.Stdout, "No districts found. Use 'animalloo import --districts' to load them.")
		return nil
	}

	for _, d := range districts {
		if d.Location != nil {
			fmt.Fprintf(deps.Stdout, "%s  %.4f,%.4f\n", d.Name, d.Location.Lat, d.Location.Lon)
			continue
		}
		fmt.Fprintln(deps.Stdout, d.Name)
	}

	return nil
}
