package csvsource

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MetaTraderTimeFormat is the time format expected by the MetaTrader decoder when cols [0] and [1] are used.
const MetaTraderTimeFormat = "02/01/2006 15:04"

var (
	// ErrNotEnoughColumns is returned when the CSV price record does not have enough columns.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the CSV price record does not have a valid time unix milli format.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when the CSV price record does not prices in expected format.
	ErrInvalidPriceFormat = errors.New("OHLC prices must be in valid decimal format")

	// ErrInvalidVolumeFormat is returned when the CSV price record does not have a valid volume format.
	ErrInvalidVolumeFormat = errors.New("volume must be in valid float format")

	ErrUnknownFormat = errors.New("unknown csv format")
)

// Format names a supported CSV layout.
type Format string

const (
	FormatBinance    Format = "binance"
	FormatMetaTrader Format = "metatrader"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatBinance:
		return FormatBinance, nil
	case FormatMetaTrader, "mt4", "mt5":
		return FormatMetaTrader, nil
	}

	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// Reader returns the reader maker of the format.
func (f Format) Reader() MakeCSVBarReader {
	if f == FormatMetaTrader {
		return NewMetaTraderCSVBarReader
	}
	return NewBinanceCSVBarReader
}

// CSVBarDecoder is an extension point for CSVBarReader to support custom file formats.
type CSVBarDecoder func(record []string) (Bar, error)

// NewBinanceCSVBarReader creates a new CSVBarReader for Binance CSV files.
func NewBinanceCSVBarReader(csv *csv.Reader) *CSVBarReader {
	return &CSVBarReader{
		csv:     csv,
		decoder: BinanceCSVBarDecoder,
	}
}

// BinanceCSVBarDecoder decodes a CSV record from Binance or Bybit into a Bar.
// The volume column is optional.
func BinanceCSVBarDecoder(record []string) (Bar, error) {
	var b, empty Bar

	if len(record) < 5 {
		return empty, ErrNotEnoughColumns
	}

	msec, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}
	b.Time = time.UnixMilli(msec).UTC()

	if err := parsePrices(&b, record[1:5]); err != nil {
		return empty, err
	}

	if len(record) > 5 {
		if b.Volume, err = parseFloat(record[5]); err != nil {
			return empty, ErrInvalidVolumeFormat
		}
	}

	return b, nil
}

// NewMetaTraderCSVBarReader creates a new CSVBarReader for MetaTrader CSV files.
func NewMetaTraderCSVBarReader(csv *csv.Reader) *CSVBarReader {
	csv.Comma = ';'
	return &CSVBarReader{
		csv:     csv,
		decoder: MetaTraderCSVBarDecoder,
	}
}

// MetaTraderCSVBarDecoder decodes a CSV record from MetaTrader into a Bar.
func MetaTraderCSVBarDecoder(record []string) (Bar, error) {
	var b, empty Bar

	if len(record) < 6 {
		return empty, ErrNotEnoughColumns
	}

	tStr := fmt.Sprintf("%s %s", record[0], record[1])
	t, err := time.Parse(MetaTraderTimeFormat, tStr)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}
	b.Time = t

	if err := parsePrices(&b, record[2:6]); err != nil {
		return empty, err
	}

	if len(record) > 6 {
		if b.Volume, err = parseFloat(record[6]); err != nil {
			return empty, ErrInvalidVolumeFormat
		}
	}

	return b, nil
}

func parsePrices(b *Bar, cols []string) error {
	dst := []*float64{&b.Open, &b.High, &b.Low, &b.Close}
	for i, col := range cols {
		v, err := parseFloat(col)
		if err != nil {
			return ErrInvalidPriceFormat
		}
		*dst[i] = v
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
