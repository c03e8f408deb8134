package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "check --rules <rules.yaml>",
		Short: "Validate a rules file and compile every pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lx, err := loadLexer(rulesPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range lx.Rules() {
				kind := "pattern"
				if len(r.Literals) > 0 {
					kind = fmt.Sprintf("%d literals", len(r.Literals))
				}
				if r.Skip {
					kind += ", skip"
				}
				fmt.Fprintf(out, "%s\t%s\n", r.Name, kind)
			}
			fmt.Fprintf(out, "ok: %d rules\n", len(lx.Rules()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "path to the YAML rules file")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}
