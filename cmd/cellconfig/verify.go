package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"xdao.co/cellconfig/cidutil"
	"xdao.co/cellconfig/manifest"
)

func newVerifyCmd(s settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [manifest-file|-]",
		Short: "Check the hashes, tags and sizes of an emitted manifest",
		Args:  rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.profile()
			if err != nil {
				return usageError{err}
			}
			var b []byte
			if len(args) == 0 || args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			rep, err := manifest.Verify(string(b), p.WitnessSizeLimit)
			if err != nil {
				return err
			}
			if want := s.v.GetString("expect-cid"); want != "" {
				ok, err := cidutil.Matches([]byte(strings.TrimRight(string(b), "\r\n")), want)
				if err != nil {
					return usageError{fmt.Errorf("--expect-cid: %w", err)}
				}
				if !ok {
					return fmt.Errorf("manifest CID %s does not match %s", rep.CID, want)
				}
			}
			w := cmd.OutOrStdout()
			if s.v.GetBool("list") {
				for _, e := range rep.Records {
					fmt.Fprintf(w, "%s\t%d\n", e.Type, e.WitnessSize)
				}
			}
			_, err = fmt.Fprintf(w, "OK records=%d cid=%s\n", len(rep.Records), rep.CID)
			return err
		},
	}
	cmd.Flags().String("expect-cid", "", "fail unless the manifest has this CID")
	cmd.Flags().Bool("list", false, "print each record's type and witness size")
	return cmd
}
