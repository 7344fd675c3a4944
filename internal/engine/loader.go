package engine

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	ErrEmptyInput    = errors.New("census file is empty")
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformedRow  = errors.New("malformed row")
)

// Source column names.
const (
	ColRegion            = "NO_REGIAO"
	ColStateCode         = "SG_UF"
	ColStateName         = "NO_UF"
	ColSchool            = "NO_ENTIDADE"
	ColDependency        = "TP_DEPENDENCIA"
	ColLocation          = "TP_LOCALIZACAO"
	ColYear              = "NU_ANO_CENSO"
	ColCourse            = "NO_CURSO_EDUC_PROFISSIONAL"
	ColEnrollment        = "QT_MAT_CURSO_TEC"
	ColIntegratedCourses = "QT_CURSO_TEC_CT"
	ColSubsequentCourses = "QT_CURSO_TEC_SUBS"
)

var requiredColumns = []string{
	ColRegion, ColStateCode, ColStateName, ColSchool, ColDependency, ColLocation,
	ColYear, ColCourse, ColEnrollment, ColIntegratedCourses, ColSubsequentCourses,
}

// header maps a required column to its position in the file.
type header map[string]int

func parseHeader(fields []string) (header, error) {
	h := make(header, len(fields))
	for i, f := range fields {
		h[strings.TrimSpace(f)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := h[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	return h, nil
}

// ctxCheckEvery is how many rows are read or parsed between cancellation checks.
const ctxCheckEvery = 4096

// Load reads a Latin-1, semicolon separated census file.
func Load(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open census file: %w", err)
	}
	defer f.Close()

	ds, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// Read parses the whole input or fails; it never returns a partial Dataset.
// Cancelling ctx stops the load with ctx.Err().
func Read(ctx context.Context, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	// Names like `Escola "Dom" Bosco` appear unquoted in the census export.
	cr.LazyQuotes = true

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h, err := parseHeader(first)
	if err != nil {
		return nil, err
	}

	var lines [][]string
	for {
		if len(lines)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, pe.Line, pe.Err)
			}
			return nil, fmt.Errorf("read rows: %w", err)
		}
		lines = append(lines, fields)
	}

	records, err := parseParallel(ctx, h, lines)
	if err != nil {
		return nil, err
	}
	return NewDataset(records), nil
}

// parseParallel splits the rows into one chunk per CPU.
func parseParallel(ctx context.Context, h header, lines [][]string) ([]Record, error) {
	records := make([]Record, len(lines))
	numWorkers := runtime.NumCPU()
	chunkSize := (len(lines) + numWorkers - 1) / numWorkers
	if chunkSize == 0 {
		return records, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(lines); start += chunkSize {
		end := min(start+chunkSize, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%ctxCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				rec, err := parseRecord(h, lines[i])
				if err != nil {
					// +2: header is line 1
					return fmt.Errorf("%w: line %d: %v", ErrMalformedRow, i+2, err)
				}
				records[i] = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func parseRecord(h header, f []string) (Record, error) {
	var (
		rec Record
		err error
	)
	get := func(col string) string { return strings.TrimSpace(f[h[col]]) }

	rec.Region = get(ColRegion)
	rec.StateCode = get(ColStateCode)
	rec.StateName = get(ColStateName)
	rec.School = get(ColSchool)
	rec.Course = get(ColCourse)

	if rec.Dependency, err = parseCode(ColDependency, get(ColDependency)); err != nil {
		return rec, err
	}
	if rec.Location, err = parseCode(ColLocation, get(ColLocation)); err != nil {
		return rec, err
	}
	if rec.Year, err = parseCode(ColYear, get(ColYear)); err != nil {
		return rec, err
	}
	if rec.Enrollment, err = parseCount(ColEnrollment, get(ColEnrollment)); err != nil {
		return rec, err
	}
	if rec.IntegratedCourses, err = parseCount(ColIntegratedCourses, get(ColIntegratedCourses)); err != nil {
		return rec, err
	}
	if rec.SubsequentCourses, err = parseCount(ColSubsequentCourses, get(ColSubsequentCourses)); err != nil {
		return rec, err
	}
	return rec, nil
}

// parseCode reads a small integer code. Empty cells become 0, which no
// label table maps. Float exports write codes as "2.0".
func parseCode(col, s string) (int32, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, ".0")
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", col, s)
	}
	return int32(n), nil
}

// parseCount reads a non-negative count; empty cells count as zero.
// Some exports write counts as "12.0".
func parseCount(col, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, ".0")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: %q is not a count", col, s)
	}
	return n, nil
}
