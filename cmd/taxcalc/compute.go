package main

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/output"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Estimate taxes for one household-year",
	Long: "Computes provisional income, taxable Social Security, federal AGI, ordinary and capital gains " +
		"tax and state tax. Amount flags that are not given are asked for on stdin.",
	Example: "  taxcalc compute --year 2025 --income 60000 --ss 40000 --ltcg 10000\n" +
		"  taxcalc compute --format json --ss-formula linear < answers.txt",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyComputeFlags(cmd, cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		in, err := readInput(cmd, cfg)
		if err != nil {
			return err
		}

		opts, err := cfg.EngineOptions()
		if err != nil {
			return err
		}
		engine := calculation.NewEngine(append(opts, calculation.WithLogger(zap.S()))...)

		result, err := engine.Compute(in)
		if err != nil {
			return err
		}
		zap.L().Debug("computed estimate",
			zap.String("year", result.Year),
			zap.String("federal_tax", result.FederalTax.StringFixed(2)),
			zap.String("state_tax", result.StateTax.StringFixed(2)),
		)

		if err := output.Render(cmd.OutOrStdout(), result, cfg.Output.Format); err != nil {
			return err
		}

		saveDir, _ := cmd.Flags().GetString("save-dir")
		if saveDir != "" {
			filename, err := output.SaveReport(result, cfg.Output.Format, saveDir)
			if err != nil {
				return eris.Wrap(err, "save report")
			}
			zap.L().Info("report saved", zap.String("file", filename))
		}
		return nil
	},
}

// applyComputeFlags copies explicitly set flags over the loaded configuration.
func applyComputeFlags(cmd *cobra.Command, c *config.Config) error {
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"year", &c.Tax.DefaultYear},
		{"format", &c.Output.Format},
		{"ss-formula", &c.Tax.SSFormula},
		{"deduction-order", &c.Tax.DeductionOrder},
		{"state-deduction", &c.Tax.StateDeduction},
		{"gains-stacking", &c.Tax.GainsStacking},
		{"profiles", &c.Tax.ProfilesFile},
	}
	flags := cmd.Flags()
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		v, err := flags.GetString(o.flag)
		if err != nil {
			return err
		}
		*o.dst = v
	}

	if flags.Changed("seniors") {
		n, err := flags.GetInt("seniors")
		if err != nil {
			return err
		}
		c.Tax.Seniors = n
	}
	return nil
}

// readInput takes amounts from flags and asks for the rest. When anything has
// to be asked, the year is asked too with the configured year as default.
func readInput(cmd *cobra.Command, c *config.Config) (domain.Input, error) {
	in := domain.Input{Year: c.Tax.DefaultYear, Seniors: c.Tax.Seniors}
	flags := cmd.Flags()

	amounts := []struct {
		flag     string
		question string
		dst      *decimal.Decimal
	}{
		{"income", "Enter your total non-Social Security income for the year", &in.NonSSIncome},
		{"ss", "Enter your total Social Security benefits", &in.SSBenefits},
		{"ltcg", "Enter your long-term capital gains", &in.CapitalGains},
	}

	var p *prompter
	for _, a := range amounts {
		if !flags.Changed(a.flag) {
			p = newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			break
		}
	}
	if p != nil && !flags.Changed("year") {
		year, err := p.ask("Enter the active tax year", in.Year)
		if err != nil {
			return domain.Input{}, err
		}
		in.Year = year
	}

	for _, a := range amounts {
		if flags.Changed(a.flag) {
			raw, _ := flags.GetString(a.flag)
			v, err := parseAmount("--"+a.flag, raw)
			if err != nil {
				return domain.Input{}, err
			}
			*a.dst = v
			continue
		}
		v, err := p.askAmount(a.question)
		if err != nil {
			return domain.Input{}, err
		}
		*a.dst = v
	}

	return in, nil
}

func init() {
	f := computeCmd.Flags()
	f.String("year", "", "tax year key (default tax.default_year)")
	f.String("income", "", "non-Social Security income for the year")
	f.String("ss", "", "total Social Security benefits")
	f.String("ltcg", "", "long-term capital gains")
	f.StringP("format", "f", "", "output format: console, console-verbose, json, yaml, csv, breakdown-csv")
	f.String("ss-formula", "", "taxable Social Security above tier 2: capped or linear")
	f.String("deduction-order", "", "where the standard deduction is taken: provisional or before")
	f.String("state-deduction", "", "state base deduction: none or standard")
	f.String("gains-stacking", "", "capital gains placement: lowest or above-ordinary")
	f.Int("seniors", domain.SeniorsBothOver65, "household members aged 65 or older (0-2)")
	f.String("profiles", "", "YAML file of additional tax year profiles")
	f.String("save-dir", "", "also write the report to a timestamped file in this directory")

	rootCmd.AddCommand(computeCmd)
}
