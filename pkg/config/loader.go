package config

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/tradelab/indicore/pkg/indicator"
	"github.com/tradelab/indicore/pkg/types"
)

// Config is a strategy file: the price data to load and the indicator slots.
type Config struct {
	Name string `json:"name" yaml:"name"`

	// Data lists csv files or directories. The command line flag takes precedence.
	Data   StringSlice `json:"data" yaml:"data"`
	Format string      `json:"format" yaml:"format"`

	Slots []SlotConfig `json:"slots" yaml:"slots"`
}

// SlotConfig mounts one indicator.
//
//	- slot: openFilter
//	  indicator: cci
//	  logic: crossesUpward
//	  usePrevious: true
//	  params:
//	    period: 20
//	    level: 100
type SlotConfig struct {
	Slot      types.SlotType `json:"slot" yaml:"slot"`
	Indicator string         `json:"indicator" yaml:"indicator"`

	// Logic and UsePrevious override the same keys in Params when set.
	Logic       *indicator.LogicMode `json:"logic,omitempty" yaml:"logic,omitempty"`
	UsePrevious *bool                `json:"usePrevious,omitempty" yaml:"usePrevious,omitempty"`

	Params yaml.Node `json:"-" yaml:"params"`
}

func (s SlotConfig) override(logic *indicator.LogicMode, usePrevious *bool) {
	if s.Logic != nil {
		*logic = *s.Logic
	}
	if s.UsePrevious != nil {
		*usePrevious = *s.UsePrevious
	}
}

// Build creates the indicator and checks that it can be mounted in the slot.
func (s SlotConfig) Build() (indicator.Mount, error) {
	builder, err := lookupBuilder(s.Indicator)
	if err != nil {
		return indicator.Mount{}, err
	}

	ind, err := builder(s)
	if err != nil {
		return indicator.Mount{}, errors.Wrapf(err, "%s", s.Indicator)
	}

	if !indicator.CanMount(ind, s.Slot) {
		return indicator.Mount{}, errors.Wrapf(indicator.ErrInvalidSlot, "%s in %s", ind.Name(), s.Slot)
	}

	return indicator.Mount{Slot: s.Slot, Indicator: ind}, nil
}

// Mounts builds every slot. All slot errors are reported together.
func (c *Config) Mounts() ([]indicator.Mount, error) {
	var mounts []indicator.Mount
	var err error
	for i, slot := range c.Slots {
		m, buildErr := slot.Build()
		if buildErr != nil {
			err = multierr.Append(err, errors.Wrapf(buildErr, "slot #%d", i))
			continue
		}
		mounts = append(mounts, m)
	}

	if err != nil {
		return nil, err
	}
	return mounts, nil
}

// Parse decodes a strategy document.
func Parse(content []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Load parses the config
func Load(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	config, err := Parse(content)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", configFile)
	}

	return config, nil
}
