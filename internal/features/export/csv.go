package export

import (
	"bytes"
	"encoding/csv"
)

// CSVStrategy serializes the record set RFC-4180 style: header row of
// column labels, one line per record, stdlib quoting.
type CSVStrategy struct{}

func (s *CSVStrategy) ContentType() string { return "text/csv" }

func (s *CSVStrategy) Extension() string { return "csv" }

func (s *CSVStrategy) Render(result *Result, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(result.Columns); err != nil {
		return nil, err
	}

	row := make([]string, len(result.Columns))
	for _, rec := range result.Records {
		for i, col := range result.Columns {
			row[i] = cellString(rec[col])
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
