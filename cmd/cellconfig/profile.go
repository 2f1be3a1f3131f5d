package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xdao.co/cellconfig/profile"
)

func newProfileCmd(s settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect parameter profiles",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List built-in profiles",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				for _, n := range profile.Names() {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), n); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the selected profile as YAML",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				p, err := s.profile()
				if err != nil {
					return usageError{err}
				}
				b, err := p.YAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			},
		},
	)
	return cmd
}
