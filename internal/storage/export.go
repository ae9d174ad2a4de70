package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportSeries struct {
	Name     string    `json:"name"`
	Quantity string    `json:"quantity"`
	N        []float64 `json:"n"`
	Values   []float64 `json:"values"`
}

type ExportData struct {
	Run    RunMetadata    `json:"run"`
	Series []ExportSeries `json:"series"`
}

// WriteCSV writes series as long-form rows of series,n,value.
func WriteCSV(w io.Writer, series []Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"series", "n", "value"}); err != nil {
		return err
	}

	for _, sr := range series {
		for _, smp := range sr.Samples {
			row := []string{
				sr.Name,
				strconv.FormatFloat(smp.N, 'g', -1, 64),
				strconv.FormatFloat(smp.Value, 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportJSON(w io.Writer, meta RunMetadata, series []Series) error {
	data := ExportData{
		Run:    meta,
		Series: make([]ExportSeries, len(series)),
	}

	for i, sr := range series {
		es := ExportSeries{
			Name:     sr.Name,
			Quantity: string(sr.Quantity),
			N:        make([]float64, len(sr.Samples)),
			Values:   make([]float64, len(sr.Samples)),
		}
		for j, smp := range sr.Samples {
			es.N[j], es.Values[j] = smp.N, smp.Value
		}
		data.Series[i] = es
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
