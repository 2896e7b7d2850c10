package cmd

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tradelab/indicore/pkg/cache"
	"github.com/tradelab/indicore/pkg/config"
	"github.com/tradelab/indicore/pkg/datasource/csvsource"
	"github.com/tradelab/indicore/pkg/engine"
	"github.com/tradelab/indicore/pkg/indicator"
	"github.com/tradelab/indicore/pkg/types"
)

var outputCache = cache.NewOutputCache(cache.DefaultExpiry)

type strategyInputs struct {
	config *config.Config
	prices *types.PriceSeries
	mounts []indicator.Mount
}

// loadStrategyInputs reads the strategy file and its price data.
func loadStrategyInputs(cmd *cobra.Command) (*strategyInputs, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if configFile == "" {
		return nil, fmt.Errorf("--config is required")
	}

	userConfig, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	mounts, err := userConfig.Mounts()
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", configFile, err)
	}

	dataPath, err := cmd.Flags().GetString("data")
	if err != nil {
		return nil, err
	}

	var paths []string
	if dataPath != "" {
		paths = append(paths, dataPath)
	} else {
		// paths in the config file are relative to the file
		for _, p := range userConfig.Data {
			if !filepath.IsAbs(p) {
				p = filepath.Join(filepath.Dir(configFile), p)
			}
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("--data is required when the config has no data entry")
	}

	rawFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	if rawFormat == "" {
		rawFormat = userConfig.Format
	}

	format, err := csvsource.ParseFormat(rawFormat)
	if err != nil {
		return nil, err
	}

	var bars []csvsource.Bar
	for _, p := range paths {
		newBars, err := csvsource.ReadBarsFromCSVWithDecoder(p, format.Reader())
		if err != nil {
			return nil, err
		}
		bars = append(bars, newBars...)
	}

	prices := csvsource.ToPriceSeries(bars)
	log.Infof("loaded %d bars (%s) for %d indicator slots", prices.Bars(), format, len(mounts))

	return &strategyInputs{
		config: userConfig,
		prices: prices,
		mounts: mounts,
	}, nil
}

func (in *strategyInputs) evaluate(cmd *cobra.Command) ([]engine.Result, error) {
	e := engine.New(engine.WithCache(outputCache))
	return e.Evaluate(cmd.Context(), in.prices, in.mounts)
}

func (in *strategyInputs) title() string {
	if in.config.Name != "" {
		return in.config.Name
	}
	return "indicore"
}
