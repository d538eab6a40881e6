package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-cleaner/src/eventmodels"
)

// ReadOptionRecordsCSV parses every row it can. Rows that cannot be converted are returned as
// failures indexed by their row number (0-based, header excluded).
func ReadOptionRecordsCSV(r io.Reader) ([]*eventmodels.OptionRecord, []*eventmodels.RecordFailure, error) {
	var rows []*eventmodels.OptionRecordCSV
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, nil, fmt.Errorf("ReadOptionRecordsCSV: failed to unmarshal csv: %w", err)
	}

	records := make([]*eventmodels.OptionRecord, 0, len(rows))
	var failures []*eventmodels.RecordFailure

	for i, row := range rows {
		record, err := row.ToModel()
		if err != nil {
			failures = append(failures, &eventmodels.RecordFailure{
				Index:  i,
				Ticker: eventmodels.OptionSymbol(row.Ticker),
				Err:    err,
			})
			continue
		}

		records = append(records, record)
	}

	return records, failures, nil
}

func LoadOptionRecordsCSV(inPath string) ([]*eventmodels.OptionRecord, []*eventmodels.RecordFailure, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return nil, nil, fmt.Errorf("LoadOptionRecordsCSV: failed to open file: %w", err)
	}

	defer f.Close()

	records, failures, err := ReadOptionRecordsCSV(f)
	if err != nil {
		return nil, nil, fmt.Errorf("LoadOptionRecordsCSV: %s: %w", inPath, err)
	}

	log.Infof("Loaded %d option records from %s (%d unreadable rows)", len(records), inPath, len(failures))

	return records, failures, nil
}

func WriteOptionRecordsCSV(w io.Writer, records []*eventmodels.OptionRecord) error {
	rows := make([]*eventmodels.OptionRecordCSV, 0, len(records))
	for _, r := range records {
		rows = append(rows, eventmodels.NewOptionRecordCSV(r))
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("WriteOptionRecordsCSV: failed to marshal csv: %w", err)
	}

	return nil
}

func ExportOptionRecordsCSV(outPath string, records []*eventmodels.OptionRecord) error {
	// Create directory if it doesn't exist
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("ExportOptionRecordsCSV: failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("ExportOptionRecordsCSV: failed to create file: %w", err)
	}

	defer file.Close()

	if err := WriteOptionRecordsCSV(file, records); err != nil {
		return fmt.Errorf("ExportOptionRecordsCSV: %s: %w", outPath, err)
	}

	log.Infof("Exported %d option records to %s", len(records), outPath)

	return nil
}
