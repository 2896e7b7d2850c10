package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tradelab/indicore/pkg/cmd/cmdutil"
	"github.com/tradelab/indicore/pkg/report"
)

func init() {
	cmdutil.InputFlags(ChartCmd.Flags())
	ChartCmd.Flags().String("out", "chart.png", "the png file to write")
	RootCmd.AddCommand(ChartCmd)
}

var ChartCmd = &cobra.Command{
	Use:   "chart --config strategy.yaml [--data prices.csv] [--out chart.png]",
	Short: "draw the close price and the indicator values to a png file",
	RunE:  drawChart,
}

func drawChart(cmd *cobra.Command, args []string) error {
	outFile, err := cmd.Flags().GetString("out")
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

	canvas, err := report.DrawResults(in.title(), in.prices, results)
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("cannot create on path %s: %w", outFile, err)
	}
	defer f.Close()

	if err := canvas.RenderPNG(f); err != nil {
		return err
	}

	log.Infof("chart written to %s", outFile)
	return nil
}
