package config

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tradelab/indicore/pkg/indicator"
)

var ErrUnknownIndicator = errors.New("unknown indicator")

// Builder creates an indicator from a slot entry.
type Builder func(slot SlotConfig) (indicator.Indicator, error)

var builders = make(map[string]Builder)

// ids keeps the canonical ids, aliases excluded.
var ids []string

// RegisterIndicator makes an indicator available to strategy files under the
// id and its aliases. Ids are matched case-insensitively.
func RegisterIndicator(id string, builder Builder, aliases ...string) {
	ids = append(ids, id)
	for _, key := range append([]string{id}, aliases...) {
		builders[strings.ToLower(key)] = builder
	}
}

// RegisteredIndicators returns the canonical ids in sorted order.
func RegisteredIndicators() []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

func lookupBuilder(id string) (Builder, error) {
	if b, ok := builders[strings.ToLower(strings.TrimSpace(id))]; ok {
		return b, nil
	}

	return nil, errors.Wrapf(ErrUnknownIndicator, "%q", id)
}

func init() {
	RegisterIndicator("awesomeOscillator", buildAwesomeOscillator, "ao")
	RegisterIndicator("cci", buildCCI, "commodityChannelIndex")
	RegisterIndicator("trix", buildTrix)
	RegisterIndicator("oscillatorOfTrix", buildOscillatorOfTrix, "ootrix")
	RegisterIndicator("parabolicSAR", buildParabolicSAR, "psar", "sar")
}

// decodeParams decodes the params node on top of the defaults.
func decodeParams[P any](node yaml.Node, defaults P) (P, error) {
	if node.Kind == 0 {
		return defaults, nil
	}

	params := defaults
	if err := node.Decode(&params); err != nil {
		return defaults, errors.Wrap(err, "params")
	}
	return params, nil
}

func buildAwesomeOscillator(slot SlotConfig) (indicator.Indicator, error) {
	params, err := decodeParams(slot.Params, indicator.DefaultAwesomeOscillatorParams())
	if err != nil {
		return nil, err
	}
	slot.override(&params.Logic, &params.UsePrevious)

	ao, err := indicator.NewAwesomeOscillator(params)
	if err != nil {
		return nil, err
	}
	return ao, nil
}

func buildCCI(slot SlotConfig) (indicator.Indicator, error) {
	params, err := decodeParams(slot.Params, indicator.DefaultCCIParams())
	if err != nil {
		return nil, err
	}
	slot.override(&params.Logic, &params.UsePrevious)

	cci, err := indicator.NewCCI(params)
	if err != nil {
		return nil, err
	}
	return cci, nil
}

func buildTrix(slot SlotConfig) (indicator.Indicator, error) {
	params, err := decodeParams(slot.Params, indicator.DefaultTrixParams())
	if err != nil {
		return nil, err
	}
	slot.override(&params.Logic, &params.UsePrevious)

	trix, err := indicator.NewTrix(params)
	if err != nil {
		return nil, err
	}
	return trix, nil
}

func buildOscillatorOfTrix(slot SlotConfig) (indicator.Indicator, error) {
	params, err := decodeParams(slot.Params, indicator.DefaultOscillatorOfTrixParams())
	if err != nil {
		return nil, err
	}
	slot.override(&params.Logic, &params.UsePrevious)

	osc, err := indicator.NewOscillatorOfTrix(params)
	if err != nil {
		return nil, err
	}
	return osc, nil
}

func buildParabolicSAR(slot SlotConfig) (indicator.Indicator, error) {
	params, err := decodeParams(slot.Params, indicator.DefaultParabolicSARParams())
	if err != nil {
		return nil, err
	}

	sar, err := indicator.NewParabolicSAR(params)
	if err != nil {
		return nil, err
	}
	return sar, nil
}
