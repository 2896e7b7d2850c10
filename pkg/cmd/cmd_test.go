package cmd

import (
	"bytes"
	"encoding/csv"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelab/indicore/pkg/datasource/csvsource"
	"github.com/tradelab/indicore/pkg/version"
)

const strategyYAML = `
name: test-strategy
data: prices
slots:
  - slot: openFilter
    indicator: cci
    logic: higherThanLevel
  - slot: openFilter
    indicator: ao
  - slot: closeFilter
    indicator: oscillatorOfTrix
    logic: crossesDownward
  - slot: close
    indicator: psar
`

// writeStrategy writes a strategy file and a binance price directory next to it.
func writeStrategy(t *testing.T, n int) string {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "prices"), 0755))

	r := rand.New(rand.NewSource(11))
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]csvsource.Bar, n)
	c := 300.0
	for i := range bars {
		o := c
		c = o + r.NormFloat64()
		bars[i] = csvsource.Bar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   o,
			High:   math.Max(o, c) + 0.5,
			Low:    math.Min(o, c) - 0.5,
			Close:  c,
			Volume: 10,
		}
	}

	f, err := os.Create(filepath.Join(dir, "prices", "TESTUSDT-1h.csv"))
	require.NoError(t, err)
	require.NoError(t, csvsource.WriteBars(f, bars))
	require.NoError(t, f.Close())

	configFile := filepath.Join(dir, "strategy.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(strategyYAML), 0644))
	return configFile
}

func execute(args ...string) (string, error) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return buf.String(), err
}

func TestCalcCommand_CSV(t *testing.T) {
	configFile := writeStrategy(t, 150)
	outFile := filepath.Join(t.TempDir(), "out.csv")

	_, err := execute("calc", "--config", configFile, "--data=", "--format=", "--output", "csv", "--last", "0", "--out", outFile)
	require.NoError(t, err)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 151)
	assert.Equal(t, "openFilter/CCI", records[0][5])
	assert.Equal(t, "close/PSAR value", records[0][len(records[0])-1])
}

func TestCalcCommand_Table(t *testing.T) {
	configFile := writeStrategy(t, 120)

	out, err := execute("calc", "--config", configFile, "--data=", "--format=", "--output", "table", "--last", "5", "--out=", "--signals")
	require.NoError(t, err)

	assert.Contains(t, out, "Commodity Channel Index is higher than the Level 100")
	assert.Contains(t, out, "Parabolic SAR (0.02, 0.02, 2.00)")
	assert.Contains(t, out, "EXIT PRICE")
}

func TestCalcCommand_Errors(t *testing.T) {
	_, err := execute("calc", "--config=", "--data=", "--format=", "--out=")
	assert.ErrorContains(t, err, "--config is required")

	configFile := writeStrategy(t, 10)
	_, err = execute("calc", "--config", configFile, "--data=", "--format=", "--output", "xml", "--out=")
	assert.ErrorContains(t, err, "unsupported output format")

	_, err = execute("calc", "--config", configFile, "--data=", "--format", "excel", "--output", "csv", "--out=")
	assert.ErrorIs(t, err, csvsource.ErrUnknownFormat)
}

func TestChartCommand(t *testing.T) {
	configFile := writeStrategy(t, 200)
	outFile := filepath.Join(t.TempDir(), "chart.png")

	_, err := execute("chart", "--config", configFile, "--data=", "--format=", "--out", outFile)
	require.NoError(t, err)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "\x89PNG"))
}

func TestConvertCommand(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "converted.csv")

	_, err := execute("convert", "--data", "../datasource/csvsource/testdata/metatrader", "--format", "metatrader", "--out", outFile)
	require.NoError(t, err)

	series, err := csvsource.ReadPriceSeries(outFile, csvsource.FormatBinance)
	require.NoError(t, err)
	assert.Equal(t, 3, series.Bars())
	assert.Equal(t, 779.527679, series.Open[0])
}

func TestVersionCommand(t *testing.T) {
	out, err := execute("version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)
}
