package consolidation

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"weatherhistory.app/internal/ports"
	"weatherhistory.app/pkg/errors"
)

const (
	TimestampColumn = "data_hora"
	timestampLayout = "2006-01-02 15:04:05"
)

// Engine merges provider outputs into one hourly dataset and writes it as CSV
type Engine struct {
	outputDir string
	logger    ports.Logger
}

func NewEngine(outputDir string, logger ports.Logger) *Engine {
	if outputDir == "" {
		outputDir = "."
	}
	return &Engine{
		outputDir: outputDir,
		logger:    logger,
	}
}

type accumulator struct {
	sum   float64
	count int
}

// Consolidate joins every provider's records on the hour and averages each
// column per bucket. It returns nil when no provider produced a usable row.
func (e *Engine) Consolidate(raw RawCollection) (*Dataset, error) {
	var (
		providers []string
		byProv    = make(map[string][]ports.WeatherRecord)
	)
	for _, year := range raw {
		for _, entry := range year.Providers {
			if _, seen := byProv[entry.Provider]; !seen {
				providers = append(providers, entry.Provider)
				byProv[entry.Provider] = nil
			}
			byProv[entry.Provider] = append(byProv[entry.Provider], entry.Records...)
		}
	}

	var columns []string
	columnIndex := make(map[string]int)
	buckets := make(map[time.Time]map[int]*accumulator)

	for _, provider := range providers {
		tag := strings.ReplaceAll(provider, " ", "")
		dropped := 0

		for _, record := range byProv[provider] {
			ts, ok := record.Timestamp()
			if !ok {
				dropped++
				continue
			}
			bucket := ts.Truncate(time.Hour)

			for _, m := range measurements {
				v := m.get(record)
				if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
					continue
				}

				name := m.name + "_" + tag
				j, exists := columnIndex[name]
				if !exists {
					j = len(columns)
					columnIndex[name] = j
					columns = append(columns, name)
				}

				cells, ok := buckets[bucket]
				if !ok {
					cells = make(map[int]*accumulator)
					buckets[bucket] = cells
				}
				acc, ok := cells[j]
				if !ok {
					acc = &accumulator{}
					cells[j] = acc
				}
				acc.sum += *v
				acc.count++
			}
		}

		if dropped > 0 {
			e.logger.Debug("Dropped records without a usable timestamp",
				ports.F("provider", provider), ports.F("count", dropped))
		}
	}

	if len(buckets) == 0 {
		e.logger.Info("No provider produced usable rows")
		return nil, nil
	}

	sortedColumns := orderColumns(columns, providers)
	remap := make([]int, len(columns))
	for newIdx, name := range sortedColumns {
		remap[columnIndex[name]] = newIdx
	}

	timestamps := make([]time.Time, 0, len(buckets))
	for ts := range buckets {
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	dataset := &Dataset{
		Columns:    sortedColumns,
		Timestamps: timestamps,
		Rows:       make([][]*float64, len(timestamps)),
	}
	for i, ts := range timestamps {
		row := make([]*float64, len(sortedColumns))
		for j, acc := range buckets[ts] {
			mean := round2(acc.sum / float64(acc.count))
			row[remap[j]] = &mean
		}
		dataset.Rows[i] = row
	}

	e.logger.Info("Consolidated dataset built",
		ports.F("rows", dataset.Len()),
		ports.F("columns", len(dataset.Columns)),
		ports.F("providers", len(providers)))
	return dataset, nil
}

// orderColumns sorts columns by provider order, then by measurement order
func orderColumns(columns []string, providers []string) []string {
	rank := make(map[string]int, len(columns))
	for p, provider := range providers {
		tag := strings.ReplaceAll(provider, " ", "")
		for m, meas := range measurements {
			rank[meas.name+"_"+tag] = p*len(measurements) + m
		}
	}

	out := make([]string, len(columns))
	copy(out, columns)
	sort.SliceStable(out, func(i, j int) bool { return rank[out[i]] < rank[out[j]] })
	return out
}

// round2 rounds to two decimals, ties to even
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// FileName builds the CSV name for a location and day
func FileName(location string, now time.Time) string {
	safe := strings.ReplaceAll(location, ", ", "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	return fmt.Sprintf("dados_climaticos_%s_%s.csv", safe, now.Format("20060102"))
}

// Save writes the dataset as CSV in the output directory and returns its path
func (e *Engine) Save(dataset *Dataset, location string, now time.Time) (string, error) {
	if dataset.Len() == 0 {
		return "", errors.NewNoDataError("dataset is empty")
	}
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create output directory", err)
	}

	path := filepath.Join(e.outputDir, FileName(location, now))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.NewStorageError("failed to create CSV file", err)
	}

	if err := writeCSV(file, dataset); err != nil {
		_ = file.Close()
		return "", errors.NewStorageError("failed to write CSV file", err)
	}
	if err := file.Close(); err != nil {
		return "", errors.NewStorageError("failed to close CSV file", err)
	}

	e.logger.Info("Consolidated CSV written", ports.F("path", path), ports.F("rows", dataset.Len()))
	return path, nil
}

func writeCSV(file *os.File, dataset *Dataset) error {
	writer := csv.NewWriter(file)

	header := append([]string{TimestampColumn}, dataset.Columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, ts := range dataset.Timestamps {
		record[0] = ts.Format(timestampLayout)
		for j, cell := range dataset.Rows[i] {
			record[j+1] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
