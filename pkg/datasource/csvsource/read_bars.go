package csvsource

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tradelab/indicore/pkg/types"
)

// BarReader is an interface for reading price bars.
type BarReader interface {
	Read() (Bar, error)
	ReadAll() ([]Bar, error)
}

// ReadBarsFromCSV reads all the .csv files in a given directory or a single file into a slice of bars.
// Wraps a default CSVBarReader with Binance decoder for convenience.
func ReadBarsFromCSV(path string) ([]Bar, error) {
	return ReadBarsFromCSVWithDecoder(path, MakeCSVBarReader(NewBinanceCSVBarReader))
}

// ReadBarsFromCSVWithDecoder permits using a custom CSVBarReader.
func ReadBarsFromCSVWithDecoder(path string, maker MakeCSVBarReader) ([]Bar, error) {
	var bars []Bar

	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".csv" {
			return nil
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		//nolint:errcheck // Read ops only so safe to ignore err return
		defer file.Close()

		reader := maker(csv.NewReader(file))
		newBars, err := reader.ReadAll()
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}

		log.Debugf("loaded %d bars from %s", len(newBars), path)
		bars = append(bars, newBars...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bars, nil
}

// ReadPriceSeries loads the path with the decoder of the format.
func ReadPriceSeries(path string, format Format) (*types.PriceSeries, error) {
	bars, err := ReadBarsFromCSVWithDecoder(path, format.Reader())
	if err != nil {
		return nil, err
	}

	return ToPriceSeries(bars), nil
}
