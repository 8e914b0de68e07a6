// Package csvio reads and writes the pipeline's tabular artifacts.
// Raw laps and pit stops live under <data-dir>/raw, cleaned laps, stint
// summaries and degradation fits under <data-dir>/processed.
package csvio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

// ErrRawLapsMissing signals that stage two ran before stage one.
var ErrRawLapsMissing = errors.New(
	"raw laps not found; run 'stint-analyzer fetch' first")

type Paths struct {
	DataDir string
}

func (p Paths) rawDir() string       { return filepath.Join(p.DataDir, "raw") }
func (p Paths) processedDir() string { return filepath.Join(p.DataDir, "processed") }

func (p Paths) RawLaps(tag string) string {
	return filepath.Join(p.rawDir(), fmt.Sprintf("laps_%s.csv", tag))
}

func (p Paths) PitStops(tag string) string {
	return filepath.Join(p.rawDir(), fmt.Sprintf("pitstops_%s.csv", tag))
}

func (p Paths) CleanLaps(tag string) string {
	return filepath.Join(p.processedDir(), fmt.Sprintf("clean_laps_%s.csv", tag))
}

func (p Paths) StintSummary(tag string) string {
	return filepath.Join(p.processedDir(), fmt.Sprintf("stint_summary_%s.csv", tag))
}

func (p Paths) DegradationFit(tag string) string {
	return filepath.Join(p.processedDir(),
		fmt.Sprintf("deg_compound_fit_%s.csv", tag))
}

func writeFile[T any](fileName string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return err
	}
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

func readFile[T any](fileName string) ([]T, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows := []T{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	return rows, nil
}

func WriteLaps(fileName string, laps []model.Lap) error {
	return writeFile(fileName, laps)
}

// ReadLaps loads a lap table. A missing file maps to ErrRawLapsMissing so
// the caller can tell the operator which step to run first.
func ReadLaps(fileName string) ([]model.Lap, error) {
	laps, err := readFile[model.Lap](fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w (%s)", ErrRawLapsMissing, fileName)
	}
	return laps, err
}

func WritePitStops(fileName string, stops []model.PitStop) error {
	return writeFile(fileName, stops)
}

func ReadPitStops(fileName string) ([]model.PitStop, error) {
	return readFile[model.PitStop](fileName)
}

func WriteStintSummaries(fileName string, summaries []model.StintSummary) error {
	return writeFile(fileName, summaries)
}

func ReadStintSummaries(fileName string) ([]model.StintSummary, error) {
	return readFile[model.StintSummary](fileName)
}

func WriteCompoundFits(fileName string, fits []model.CompoundFit) error {
	return writeFile(fileName, fits)
}

func ReadCompoundFits(fileName string) ([]model.CompoundFit, error) {
	return readFile[model.CompoundFit](fileName)
}
