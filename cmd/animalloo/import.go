package main

import (
	"fmt"
	"os"

	"github.com/animalloo/animalloo"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", c.Path, err)
	}
	defer f.Close()

	if c.Districts {
		n, err := deps.Importer.ImportDistricts(deps.Ctx, f)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", animalloo.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Imported %d districts from %s\n", n, c.Path)
		return nil
	}

	n, err := deps.Importer.ImportFacilities(deps.Ctx, f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", animalloo.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Imported %d facilities from %s\n", n, c.Path)
	return nil
}
