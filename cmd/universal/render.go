package main

import (
	"context"
	"encoding/json"
	"net/url"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/universal/pkg/engine"
)

func renderCmd(configPath *string) *cobra.Command {
	var (
		origin string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "render <url>",
		Short: "Render one URL and print the result as JSON",
		Long: `Render one URL through the engine and print {"html", "globals"} to stdout.

An absolute URL supplies its own origin; a path is rendered against --origin.

Examples:
  universal render /
  universal render https://example.com/about --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, nil)
			if err != nil {
				return err
			}

			req, err := requestFor(args[0], origin)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res, err := a.engine.Render(ctx, a.options(req))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "http://localhost", "Origin for path-only URLs")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the JSON output")

	return cmd
}

// requestFor splits raw into origin and request URI.
func requestFor(raw, origin string) (engine.Request, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return engine.Request{}, err
	}
	if u.Scheme != "" && u.Host != "" {
		origin = u.Scheme + "://" + u.Host
	}
	return engine.Request{
		Origin: origin,
		URL:    u.RequestURI(),
	}, nil
}
