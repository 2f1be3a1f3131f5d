package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"xdao.co/cellconfig/datafile"
	"xdao.co/cellconfig/logtrace"
	"xdao.co/cellconfig/profile"
)

const envPrefix = "CELLCONFIG"

// settings are the resolved flag, environment and config file values.
type settings struct {
	v *viper.Viper
}

func (s settings) profile() (*profile.Profile, error) {
	return profile.Lookup(s.v.GetString("profile"))
}

func (s settings) policy() datafile.Policy {
	if s.v.GetBool("lenient") {
		return datafile.Skip
	}
	return datafile.Strict
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	s := settings{v: viper.New()}
	s.v.SetEnvPrefix(envPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "cellconfig",
		Short:         "Generate config cell payloads",
		Long:          "cellconfig builds the deterministic config cell records of one release and prints them as a single manifest line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if path := s.v.GetString("config"); path != "" {
				s.v.SetConfigFile(path)
				if err := s.v.ReadInConfig(); err != nil {
					return usageError{fmt.Errorf("read config %s: %w", path, err)}
				}
			}
			if err := logtrace.Setup(s.v.GetString("log-level"), s.v.GetString("log-format"), cmd.ErrOrStderr()); err != nil {
				return usageError{fmt.Errorf("logging: %w", err)}
			}
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.String("config", "", "optional YAML file with flag defaults")
	pf.String("profile", profile.Default, "parameter profile ("+strings.Join(profile.Names(), "|")+")")
	pf.String("log-level", "info", "log level (debug|info|warn|error)")
	pf.String("log-format", "json", "log format written to stderr (json|console)")

	root.AddCommand(
		newGenerateCmd(s),
		newVerifyCmd(s),
		newProfileCmd(s),
		newSectionsCmd(),
	)
	return root
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
