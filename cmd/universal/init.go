package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/universal/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		selector string
		force    bool
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new project",
		Long: `Create a configuration file and starter resources.

Examples:
  universal init
  universal init shop --template=full --selector=shop-root`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range templates.List() {
					tmpl, _ := templates.Get(name)
					fmt.Printf("  %-10s %s\n", name, tmpl.Description)
				}
				return nil
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			dir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			if err := tmpl.Create(dir, templates.Config{Selector: selector}, force); err != nil {
				return err
			}

			status(cmd.OutOrStdout(), true, "Created %s project in %s", tmpl.Name, dir)
			status(cmd.OutOrStdout(), false, "Run universal serve to start rendering")
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Project template")
	cmd.Flags().StringVar(&selector, "selector", "app-root", "App root tag")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")
	cmd.Flags().BoolVar(&list, "list", false, "List available templates")

	return cmd
}
