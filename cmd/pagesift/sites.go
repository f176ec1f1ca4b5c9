package main

import "fmt"

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	for _, name := range deps.Sites.List() {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
