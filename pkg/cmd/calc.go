package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tradelab/indicore/pkg/cmd/cmdutil"
	"github.com/tradelab/indicore/pkg/engine"
	"github.com/tradelab/indicore/pkg/report"
)

func init() {
	cmdutil.InputFlags(CalcCmd.Flags())
	CalcCmd.Flags().String("output", "table", "output format: table or csv")
	CalcCmd.Flags().String("out", "", "write the output to this file instead of stdout")
	CalcCmd.Flags().Int("last", 20, "only print the last N bars, 0 prints all bars")
	CalcCmd.Flags().Bool("signals", false, "also print the combined entry and exit signals (table output)")
	RootCmd.AddCommand(CalcCmd)
}

var CalcCmd = &cobra.Command{
	Use:   "calc --config strategy.yaml [--data prices.csv] [--format binance|metatrader] [--output table|csv] [--last N]",
	Short: "calculate the indicators of a strategy file",
	RunE:  calc,
}

func calc(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output != "table" && output != "csv" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	last, err := cmd.Flags().GetInt("last")
	if err != nil {
		return err
	}

	withSignals, err := cmd.Flags().GetBool("signals")
	if err != nil {
		return err
	}

	in, err := loadStrategyInputs(cmd)
	if err != nil {
		return err
	}

	results, err := in.evaluate(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if outFile, _ := cmd.Flags().GetString("out"); outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("cannot create output file %s: %w", outFile, err)
		}
		defer f.Close()
		w = f
	}

	if output == "csv" {
		return report.WriteCSV(w, in.prices, results, last)
	}

	writeTables(w, in, results, last, withSignals)
	return nil
}

func writeTables(w io.Writer, in *strategyInputs, results []engine.Result, last int, withSignals bool) {
	var style *table.Style
	if viper.GetBool("no-color") || w != os.Stdout {
		style = report.NewPlainTableStyle()
	} else {
		style = report.NewDefaultTableStyle()
	}

	report.WriteSummaryTable(w, results, style)
	report.WriteValuesTable(w, in.prices, results, last, style)

	if withSignals {
		report.WriteSignalsTable(w, in.prices, engine.CombineSignals(in.prices.Bars(), results), last, style)
	}
}
