// Package dataset reads stage inputs and writes stage artifacts.
//
// Inputs are JSON. Outputs are indented UTF-8 JSON, CSV prefixed with a UTF-8
// byte-order mark for spreadsheet tools, and Parquet.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is a record that can render itself as a CSV line.
type Row interface {
	CSVRow() []string
}

// WithSuffix replaces the extension of root with ext (".json", ".csv", ...).
func WithSuffix(root, ext string) string {
	return strings.TrimSuffix(root, filepath.Ext(root)) + ext
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainerrors.NotFound(fmt.Sprintf("input file %s", path), err)
		}
		return nil, domainerrors.InvalidInput(fmt.Sprintf("read %s", path), err)
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}

// ReadJobs loads crawler output: either {"jobs": [...]} or a bare array.
func ReadJobs(path string) ([]models.RawPosting, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var jobs []models.RawPosting
		if err := json.Unmarshal(trimmed, &jobs); err != nil {
			return nil, domainerrors.InvalidInput(fmt.Sprintf("decode %s", path), err)
		}
		return jobs, nil
	}

	var envelope struct {
		Jobs []models.RawPosting `json:"jobs"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, domainerrors.InvalidInput(fmt.Sprintf("decode %s", path), err)
	}
	return envelope.Jobs, nil
}

// ReadRecords loads an array of flat JSON objects. A {"jobs": [...]} envelope is
// accepted as well.
func ReadRecords(path string) ([]map[string]any, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	var records []map[string]any
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Jobs []map[string]any `json:"jobs"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, domainerrors.InvalidInput(fmt.Sprintf("decode %s", path), err)
		}
		return envelope.Jobs, nil
	}
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, domainerrors.InvalidInput(fmt.Sprintf("decode %s", path), err)
	}
	return records, nil
}

// ReadAs loads path with ReadRecords and decodes every record into T.
func ReadAs[T any](path string) ([]T, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for i, rec := range records {
		v, err := Decode[T](rec)
		if err != nil {
			return nil, domainerrors.InvalidInput(fmt.Sprintf("%s record %d", path, i), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Decode converts a loosely-typed record into a struct through its JSON tags.
func Decode[T any](record map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(record)
	if err != nil {
		return out, fmt.Errorf("marshal record: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

// WriteJSON writes v as indented UTF-8 JSON without HTML escaping.
func WriteJSON(path string, v any) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteCSV writes a BOM-prefixed CSV with the given header.
func WriteCSV[T Row](path string, header []string, rows []T) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.CSVRow()); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteParquet writes rows as a Parquet file using the rows' parquet tags.
func WriteParquet[T any](path string, rows []T) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}

// WriteAll writes the .json, .csv and .parquet artifacts for root and returns their paths.
func WriteAll[T Row](root string, header []string, rows []T) ([]string, error) {
	paths := []string{WithSuffix(root, ".json"), WithSuffix(root, ".csv"), WithSuffix(root, ".parquet")}
	if rows == nil {
		rows = []T{}
	}
	if err := WriteJSON(paths[0], rows); err != nil {
		return nil, err
	}
	if err := WriteCSV(paths[1], header, rows); err != nil {
		return nil, err
	}
	if err := WriteParquet(paths[2], rows); err != nil {
		return nil, err
	}
	return paths, nil
}

func create(path string) (*os.File, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}
