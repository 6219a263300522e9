package cmd

import (
	"fmt"

	"github.com/go-vivid/vivid/pkg/catalog"
	"github.com/go-vivid/vivid/showcase"
)

func init() {
	RegisterCommand(&Command{
		Name:  "list",
		Short: "List catalog effects",
		Long: `List the effects in a catalog with their version, hosting protocol,
and export-name candidates.

Without arguments the built-in showcase catalog is listed. Pass a path
to list an external catalog file instead.`,
		Usage: "vivid list [catalog.yaml]",
		Run:   runList,
	})
}

func runList(args []string) error {
	var (
		c   *catalog.Catalog
		err error
	)
	if len(args) > 0 {
		c, err = catalog.Load(args[0])
	} else {
		c, err = showcase.Catalog()
	}
	if err != nil {
		return err
	}

	fmt.Printf("%-16s %-10s %-14s %s\n", "ID", "VERSION", "PROTOCOL", "CANDIDATES")
	for _, id := range c.IDs() {
		meta, _ := c.Get(id)
		protocol := "scene-graph"
		if c.UsesSelfContext(id) {
			protocol = "self-context"
		}
		version := meta.Version
		if version == "" {
			version = "-"
		}
		fmt.Printf("%-16s %-10s %-14s %v\n", meta.ID, version, protocol, meta.Components)
	}
	return nil
}
