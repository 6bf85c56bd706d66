package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// columnIndex maps header names to their positions
type columnIndex map[string]int

func indexHeader(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func (ci columnIndex) field(record []string, name string) (string, error) {
	i, ok := ci[name]
	if !ok {
		return "", fmt.Errorf("missing column %q", name)
	}
	if i >= len(record) {
		return "", fmt.Errorf("row too short for column %q", name)
	}
	return strings.TrimSpace(record[i]), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool %q", s)
	}
}

// parseNullableFloat returns nil for NA/empty values
func parseNullableFloat(s string) (*float64, error) {
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func openTable(path string) (*os.File, *csv.Reader, columnIndex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	return file, reader, indexHeader(header), nil
}

// readSales reads the sales table: Store, Dept, Date, Weekly_Sales, IsHoliday
func readSales(path string) ([]SalesRecord, error) {
	file, reader, idx, err := openTable(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []SalesRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseSalesRow(idx, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseSalesRow(idx columnIndex, row []string) (SalesRecord, error) {
	var rec SalesRecord

	s, err := idx.field(row, "Store")
	if err != nil {
		return rec, err
	}
	if rec.Store, err = strconv.Atoi(s); err != nil {
		return rec, fmt.Errorf("invalid Store %q", s)
	}

	if s, err = idx.field(row, "Dept"); err != nil {
		return rec, err
	}
	if rec.Dept, err = strconv.Atoi(s); err != nil {
		return rec, fmt.Errorf("invalid Dept %q", s)
	}

	if s, err = idx.field(row, "Date"); err != nil {
		return rec, err
	}
	if rec.Date, err = time.Parse(dateFormat, s); err != nil {
		return rec, fmt.Errorf("invalid Date %q", s)
	}

	if s, err = idx.field(row, "Weekly_Sales"); err != nil {
		return rec, err
	}
	if rec.WeeklySales, err = strconv.ParseFloat(s, 64); err != nil {
		return rec, fmt.Errorf("invalid Weekly_Sales %q", s)
	}

	if s, err = idx.field(row, "IsHoliday"); err != nil {
		return rec, err
	}
	if rec.IsHoliday, err = parseBool(s); err != nil {
		return rec, err
	}

	return rec, nil
}

// readStores reads the stores table: Store, Type, Size
func readStores(path string) ([]StoreMeta, error) {
	file, reader, idx, err := openTable(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []StoreMeta
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var rec StoreMeta

		s, err := idx.field(row, "Store")
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Store, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("line %d: invalid Store %q", line, s)
		}

		if rec.Type, err = idx.field(row, "Type"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if s, err = idx.field(row, "Size"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Size, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("line %d: invalid Size %q", line, s)
		}

		records = append(records, rec)
	}

	return records, nil
}

// readFeatures reads the features table: Store, Date, Temperature, Fuel_Price,
// MarkDown1..5, CPI, Unemployment, IsHoliday
func readFeatures(path string) ([]FeatureRecord, error) {
	file, reader, idx, err := openTable(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []FeatureRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseFeatureRow(idx, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseFeatureRow(idx columnIndex, row []string) (FeatureRecord, error) {
	var rec FeatureRecord

	s, err := idx.field(row, "Store")
	if err != nil {
		return rec, err
	}
	if rec.Store, err = strconv.Atoi(s); err != nil {
		return rec, fmt.Errorf("invalid Store %q", s)
	}

	if s, err = idx.field(row, "Date"); err != nil {
		return rec, err
	}
	if rec.Date, err = time.Parse(dateFormat, s); err != nil {
		return rec, fmt.Errorf("invalid Date %q", s)
	}

	nullable := []struct {
		column string
		target **float64
	}{
		{"Temperature", &rec.Temperature},
		{"Fuel_Price", &rec.FuelPrice},
		{"CPI", &rec.CPI},
		{"Unemployment", &rec.Unemployment},
		{"MarkDown1", &rec.MarkDowns[0]},
		{"MarkDown2", &rec.MarkDowns[1]},
		{"MarkDown3", &rec.MarkDowns[2]},
		{"MarkDown4", &rec.MarkDowns[3]},
		{"MarkDown5", &rec.MarkDowns[4]},
	}
	for _, col := range nullable {
		if s, err = idx.field(row, col.column); err != nil {
			return rec, err
		}
		if *col.target, err = parseNullableFloat(s); err != nil {
			return rec, fmt.Errorf("invalid %s %q", col.column, s)
		}
	}

	if s, err = idx.field(row, "IsHoliday"); err != nil {
		return rec, err
	}
	if rec.IsHoliday, err = parseBool(s); err != nil {
		return rec, err
	}

	return rec, nil
}
