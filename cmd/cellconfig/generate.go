package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xdao.co/cellconfig/datafile"
	"xdao.co/cellconfig/generator"
	"xdao.co/cellconfig/logtrace"
)

func newGenerateCmd(s settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build every config cell and print the manifest line",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := s.profile()
			if err != nil {
				return usageError{err}
			}
			dir, err := datafile.Open(s.v.GetString("data-dir"), s.policy())
			if err != nil {
				return err
			}
			g, err := generator.New(p, dir, generator.WithSections(s.v.GetStringSlice("only")...))
			if err != nil {
				return usageError{err}
			}
			ctx := cmd.Context()
			logtrace.Info(ctx, "generating config cells", logtrace.Fields{
				logtrace.FieldProfile: p.Name,
				"data_dir":            dir.Root(),
				"decode_policy":       dir.Policy().String(),
			})
			line, err := g.Generate(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}
	f := cmd.Flags()
	f.String("data-dir", "data", "directory holding the input files")
	f.Bool("lenient", false, "skip input lines that are not valid UTF-8 instead of failing")
	f.StringSlice("only", nil, "generate only these sections (see 'cellconfig sections')")
	return cmd
}

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List config sections in output order",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range generator.Sections() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
