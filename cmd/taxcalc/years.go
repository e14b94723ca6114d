package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/output"
	"github.com/rpgo/tax-estimator/internal/taxtable"
	money "github.com/rpgo/tax-estimator/pkg/decimal"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List the supported tax years",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := cfg.Tax.ProfilesFile
		if cmd.Flags().Changed("profiles") {
			path, _ = cmd.Flags().GetString("profiles")
		}

		registry := taxtable.DefaultRegistry()
		if path != "" {
			r, err := config.NewProfileParser().LoadRegistry(path)
			if err != nil {
				return err
			}
			registry = r
		}

		profiles := make([]domain.TaxYearProfile, 0, len(registry.Years()))
		for _, year := range registry.Years() {
			p, err := registry.Resolve(year)
			if err != nil {
				return err
			}
			profiles = append(profiles, p)
		}
		formatYearsList(cmd.OutOrStdout(), profiles)
		return nil
	},
}

func formatYearsList(out io.Writer, profiles []domain.TaxYearProfile) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "YEAR\tSTD_DEDUCTION\tOVER_65\tEXTRA_65\tTOP_RATE\tSTATE_RATE")
	_, _ = fmt.Fprintln(w, "----\t-------------\t-------\t--------\t--------\t----------")

	for _, p := range profiles {
		top := p.OrdinaryBrackets[len(p.OrdinaryBrackets)-1]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Year,
			output.FormatWhole(p.StandardDeduction),
			output.FormatWhole(p.Over65Deduction),
			output.FormatWhole(p.Over65ExtraDeduction),
			money.FormatRate(top.Rate),
			money.FormatRate(p.StateFlatRate),
		)
	}
	_ = w.Flush()
}

func init() {
	yearsCmd.Flags().String("profiles", "", "YAML file of additional tax year profiles")
	rootCmd.AddCommand(yearsCmd)
}
