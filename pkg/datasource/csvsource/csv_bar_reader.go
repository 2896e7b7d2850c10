package csvsource

import (
	"encoding/csv"
	"io"
)

var _ BarReader = (*CSVBarReader)(nil)

// CSVBarReader is a BarReader that reads from a CSV file.
type CSVBarReader struct {
	csv     *csv.Reader
	decoder CSVBarDecoder
}

// MakeCSVBarReader is a factory method type that creates a new CSVBarReader.
type MakeCSVBarReader func(csv *csv.Reader) *CSVBarReader

// NewCSVBarReader creates a new CSVBarReader with the default Binance decoder.
func NewCSVBarReader(csv *csv.Reader) *CSVBarReader {
	return &CSVBarReader{
		csv:     csv,
		decoder: BinanceCSVBarDecoder,
	}
}

// NewCSVBarReaderWithDecoder creates a new CSVBarReader with the given decoder.
func NewCSVBarReaderWithDecoder(csv *csv.Reader, decoder CSVBarDecoder) *CSVBarReader {
	return &CSVBarReader{
		csv:     csv,
		decoder: decoder,
	}
}

// Read reads the next Bar from the underlying CSV data.
func (r *CSVBarReader) Read() (Bar, error) {
	rec, err := r.csv.Read()
	if err != nil {
		return Bar{}, err
	}

	return r.decoder(rec)
}

// ReadAll reads all the bars from the underlying CSV data.
func (r *CSVBarReader) ReadAll() ([]Bar, error) {
	var bars []Bar
	for {
		b, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}

	return bars, nil
}
