package main

import (
	"fmt"
	"io"
	"strings"

	"techcensus/internal/engine"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the available views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), engine.Catalog())
		},
	}
}

func newViewCmd(opts *options) *cobra.Command {
	var (
		states string
		format string
	)

	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Compute one view and write it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "arrow" {
				return fmt.Errorf("unknown format %q (want json or arrow)", format)
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			log := newLogger(cfg, cmd.ErrOrStderr())

			ds, err := engine.Load(cmd.Context(), cfg.Data.Path)
			if err != nil {
				return err
			}

			res := engine.Compute(ds, args[0], splitStates(states))
			switch {
			case !engine.Known(args[0]):
				log.Warn().Str("view", args[0]).Msg("unknown view, result is empty")
			case res.Empty():
				log.Warn().Str("view", args[0]).Strs("states", splitStates(states)).Msg("no rows match the filter")
			default:
				log.Debug().Str("view", args[0]).Int("rows", len(res.Rows)).Int64("total", res.Total()).Msg("view computed")
			}
			if format == "arrow" {
				return engine.WriteArrow(cmd.OutOrStdout(), res)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&states, "states", "", "comma separated state codes, e.g. PE,SP")
	cmd.Flags().StringVar(&format, "format", "json", "json|arrow")
	return cmd
}

func splitStates(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
