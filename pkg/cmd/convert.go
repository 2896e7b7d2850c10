package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tradelab/indicore/pkg/datasource/csvsource"
)

func init() {
	ConvertCmd.Flags().String("data", "", "price csv file or directory")
	ConvertCmd.Flags().String("format", "metatrader", "csv format of the input: binance or metatrader")
	ConvertCmd.Flags().String("out", "", "the binance csv file to write, stdout when empty")
	RootCmd.AddCommand(ConvertCmd)
}

// ConvertCmd rewrites price files in the binance layout, sorted by time.
var ConvertCmd = &cobra.Command{
	Use:   "convert --data prices.csv [--format metatrader] [--out prices-binance.csv]",
	Short: "convert price csv files into the binance layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataPath, err := cmd.Flags().GetString("data")
		if err != nil {
			return err
		}
		if dataPath == "" {
			return fmt.Errorf("--data is required")
		}

		rawFormat, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}

		format, err := csvsource.ParseFormat(rawFormat)
		if err != nil {
			return err
		}

		bars, err := csvsource.ReadBarsFromCSVWithDecoder(dataPath, format.Reader())
		if err != nil {
			return err
		}

		sorted := csvsource.SortBars(bars)

		w := cmd.OutOrStdout()
		if outFile, _ := cmd.Flags().GetString("out"); outFile != "" {
			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("cannot create output file %s: %w", outFile, err)
			}
			defer f.Close()
			w = f
		}

		if err := csvsource.WriteBars(w, sorted); err != nil {
			return err
		}

		log.Infof("converted %d bars", len(sorted))
		return nil
	},
}
