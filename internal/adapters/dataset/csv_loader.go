package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cinemamap/backend/internal/domain/entities"
	apperrors "github.com/cinemamap/backend/pkg/errors"
)

// Column headers of the national cinema table.
const (
	ColumnName          = "nom"
	ColumnAddress       = "adresse"
	ColumnMunicipality  = "commune"
	ColumnDepartment    = "DEP"
	ColumnScreens       = "écrans"
	ColumnSeats         = "fauteuils"
	ColumnShowings      = "séances"
	ColumnAdmissions    = "entrées 2019"
	ColumnArthouseShare = "PdM en entrées des films Art et Essai"
	ColumnLatitude      = "latitude"
	ColumnLongitude     = "longitude"

	marketSharePrefix      = "PdM"
	marketShareLabelPrefix = "PdM en entrées des "
)

var requiredColumns = []string{
	ColumnName,
	ColumnAddress,
	ColumnMunicipality,
	ColumnDepartment,
	ColumnScreens,
	ColumnSeats,
	ColumnShowings,
	ColumnAdmissions,
	ColumnArthouseShare,
	ColumnLatitude,
	ColumnLongitude,
}

// LoadCinemas reads a semicolon-delimited cinema table and derives per-row metrics.
func LoadCinemas(path string) ([]entities.Cinema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataLoadError(fmt.Sprintf("cannot open dataset %s", path), err)
	}
	defer f.Close()

	return ParseCinemas(f)
}

// ParseCinemas parses a cinema table from r.
func ParseCinemas(r io.Reader) ([]entities.Cinema, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewDataLoadError("dataset is empty", nil)
	}
	if err != nil {
		return nil, apperrors.NewDataLoadError("cannot read dataset header", err)
	}

	schema, err := newSchema(header)
	if err != nil {
		return nil, err
	}

	var cinemas []entities.Cinema
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewDataLoadError(fmt.Sprintf("malformed row at line %d", line), err)
		}
		if isBlank(record) {
			continue
		}

		cinema, err := schema.parse(record)
		if err != nil {
			return nil, apperrors.NewDataLoadError(fmt.Sprintf("invalid row at line %d", line), err)
		}
		cinemas = append(cinemas, cinema)
	}

	return cinemas, nil
}

type shareColumn struct {
	index int
	label string
}

// schema maps column names to their position in a row.
type schema struct {
	index  map[string]int
	shares []shareColumn
}

func newSchema(header []string) (*schema, error) {
	s := &schema{index: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := s.index[name]; dup {
			continue
		}
		s.index[name] = i
		if strings.HasPrefix(name, marketSharePrefix) && name != ColumnArthouseShare {
			s.shares = append(s.shares, shareColumn{index: i, label: ShareLabel(name)})
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := s.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewDataLoadError(
			fmt.Sprintf("dataset is missing columns: %s", strings.Join(missing, ", ")), nil)
	}
	return s, nil
}

// ShareLabel turns a market-share header into its category label.
func ShareLabel(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, marketShareLabelPrefix))
}

func (s *schema) field(record []string, column string) string {
	i := s.index[column]
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (s *schema) parse(record []string) (entities.Cinema, error) {
	c := entities.Cinema{
		Name:         s.field(record, ColumnName),
		Address:      s.field(record, ColumnAddress),
		Municipality: s.field(record, ColumnMunicipality),
		Department:   s.field(record, ColumnDepartment),
	}

	var err error
	if c.Screens, err = parseCount(s.field(record, ColumnScreens)); err != nil {
		return c, fmt.Errorf("%s: %w", ColumnScreens, err)
	}
	if c.Seats, err = parseCount(s.field(record, ColumnSeats)); err != nil {
		return c, fmt.Errorf("%s: %w", ColumnSeats, err)
	}
	showings, err := parseCount(s.field(record, ColumnShowings))
	if err != nil {
		return c, fmt.Errorf("%s: %w", ColumnShowings, err)
	}
	c.Showings = int64(showings)
	admissions, err := parseCount(s.field(record, ColumnAdmissions))
	if err != nil {
		return c, fmt.Errorf("%s: %w", ColumnAdmissions, err)
	}
	c.Admissions = int64(admissions)

	if v, ok, err := parseOptionalFloat(s.field(record, ColumnArthouseShare)); err != nil {
		return c, fmt.Errorf("%s: %w", ColumnArthouseShare, err)
	} else if ok {
		c.ArthouseShare = v
	}

	for _, col := range s.shares {
		raw := ""
		if col.index < len(record) {
			raw = strings.TrimSpace(record[col.index])
		}
		v, ok, err := parseOptionalFloat(raw)
		if err != nil {
			return c, fmt.Errorf("%s: %w", col.label, err)
		}
		c.MarketShares = append(c.MarketShares, entities.MarketShare{Category: col.label, Percent: v, Missing: !ok})
	}

	if c.Location.Latitude, err = parseFloat(s.field(record, ColumnLatitude)); err != nil {
		return c, fmt.Errorf("%s: %w", ColumnLatitude, err)
	}
	if c.Location.Longitude, err = parseFloat(s.field(record, ColumnLongitude)); err != nil {
		return c, fmt.Errorf("%s: %w", ColumnLongitude, err)
	}

	c.Derive()
	return c, nil
}

// parseCount accepts integers written with or without a trailing ".0" and
// with space thousand separators.
func parseCount(raw string) (int, error) {
	raw = stripSpaces(raw)
	if raw == "" {
		return 0, fmt.Errorf("value is required")
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%q is not a count", raw)
		}
		return n, nil
	}
	f, err := parseFloat(raw)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not a count", raw)
	}
	return int(f), nil
}

func parseFloat(raw string) (float64, error) {
	raw = strings.ReplaceAll(stripSpaces(raw), ",", ".")
	if raw == "" {
		return 0, fmt.Errorf("value is required")
	}
	return strconv.ParseFloat(raw, 64)
}

func parseOptionalFloat(raw string) (float64, bool, error) {
	if stripSpaces(raw) == "" {
		return 0, false, nil
	}
	v, err := parseFloat(raw)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func stripSpaces(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t':
			return -1
		}
		return r
	}, raw)
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
