package cmd

import (
	"fmt"

	"github.com/go-vivid/vivid/pkg/catalog"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Validate a catalog file",
		Long: `Validate a catalog YAML file: ids must be unique and non-empty,
versions must be semantic versions, every entry must list at least one
component candidate, and the self-context table may only name declared
effects. Unknown fields are rejected.`,
		Usage: "vivid validate <catalog.yaml>",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("validate requires exactly one catalog path")
	}
	c, err := catalog.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: OK (%d effects, %d self-context)\n", args[0], len(c.Effects), len(c.SelfContext))
	return nil
}
