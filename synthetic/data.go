// Package synthetic generates messy PAN datasets for local runs and tests.
package synthetic

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the name of the generated CSV file.
const FileName = "pan-synthetic-data.csv"

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// PAN returns a well-formed PAN: five letters, four digits, one letter.
func PAN(rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(10)
	for i := 0; i < 5; i++ {
		b.WriteByte(letters[rng.Intn(len(letters))])
	}
	for i := 0; i < 4; i++ {
		b.WriteByte(digits[rng.Intn(len(digits))])
	}
	b.WriteByte(letters[rng.Intn(len(letters))])
	return b.String()
}

// Records returns rows PAN values dirtied the way hand-keyed data tends to be:
// lowercased, padded with blanks, or left empty.
func Records(rows int, rng *rand.Rand) []string {
	values := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		values = append(values, dirty(PAN(rng), rng))
	}
	return values
}

func dirty(pan string, rng *rand.Rand) string {
	switch roll := rng.Intn(10); {
	case roll == 0:
		return ""
	case roll < 4:
		return strings.ToLower(pan)
	case roll < 6:
		return pan[:5] + strings.ToLower(pan[5:])
	case roll < 9:
		pads := []string{" ", "  ", "\t"}
		return pads[rng.Intn(len(pads))] + pan + pads[rng.Intn(len(pads))]
	default:
		return pan
	}
}

// WriteCSV writes values under a single header column to path.
func WriteCSV(path, column string, values []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file '%s': %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{column}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, v := range values {
		if v == "" {
			// A lone empty field is written as a blank line, which readers skip.
			writer.Flush()
			if _, err := io.WriteString(file, "\"\"\n"); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
			continue
		}
		if err := writer.Write([]string{v}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush '%s': %w", path, err)
	}
	return nil
}

// GenerateSyntheticData creates dir if needed and writes a CSV file with rows
// synthetic PAN values under column. It returns the path of the file.
func GenerateSyntheticData(rows int, dir, column string, rng *rand.Rand) (string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}

	filePath := filepath.Join(dir, FileName)
	if err := WriteCSV(filePath, column, Records(rows, rng)); err != nil {
		return "", err
	}
	return filePath, nil
}
