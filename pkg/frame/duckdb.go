package frame

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-charting/internal/logger"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
	"go.uber.org/zap"
)

// LoadOptions configures how a file is read into a frame.
type LoadOptions struct {
	// TimeColumn is the label of the column used as the frame index,
	// matched case-insensitively. Defaults to "time".
	TimeColumn string
	// Start and End bound the loaded rows by the time column, inclusive.
	Start optional.Option[time.Time]
	End   optional.Option[time.Time]
}

// Loader reads CSV and Parquet files into frames through an in-memory
// DuckDB database.
type Loader struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewLoader creates a loader backed by an in-memory DuckDB database.
func NewLoader(log *logger.Logger) (*Loader, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}

	return &Loader{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Close releases the underlying database.
func (l *Loader) Close() error {
	return l.db.Close()
}

// LoadCSV reads a CSV file (with header) into a frame.
func (l *Loader) LoadCSV(path string, opts LoadOptions) (*Frame, error) {
	return l.load(fmt.Sprintf("read_csv_auto('%s')", escapeSQLString(path)), opts)
}

// LoadParquet reads a Parquet file into a frame.
func (l *Loader) LoadParquet(path string, opts LoadOptions) (*Frame, error) {
	return l.load(fmt.Sprintf("read_parquet('%s')", escapeSQLString(path)), opts)
}

func (l *Loader) load(source string, opts LoadOptions) (*Frame, error) {
	timeColumn := opts.TimeColumn
	if timeColumn == "" {
		timeColumn = "time"
	}

	l.logger.Debug("loading frame", zap.String("source", source), zap.String("time_column", timeColumn))

	// First drop the view if it exists
	if _, err := l.db.Exec(`DROP VIEW IF EXISTS market_data;`); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// Squirrel doesn't support CREATE VIEW, use raw SQL
	if _, err := l.db.Exec(fmt.Sprintf(`CREATE VIEW market_data AS SELECT * FROM %s;`, source)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to create view", err)
	}

	query := l.sq.Select("*").From("market_data")

	if opts.Start.IsSome() {
		query = query.Where(squirrel.GtOrEq{timeColumn: opts.Start.Unwrap()})
	}

	if opts.End.IsSome() {
		query = query.Where(squirrel.LtOrEq{timeColumn: opts.End.Unwrap()})
	}

	sqlStr, args, err := query.OrderBy(timeColumn).ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := l.db.Query(sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", err)
	}
	defer rows.Close()

	columnNames, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read result columns", err)
	}

	timeIndex := -1

	for i, name := range columnNames {
		if strings.EqualFold(name, timeColumn) {
			timeIndex = i

			break
		}
	}

	if timeIndex == -1 {
		return nil, errors.Newf(errors.ErrCodeColumnNotFound,
			"no column matching %q among [%s]", timeColumn, strings.Join(columnNames, ", "))
	}

	index := []time.Time{}
	values := make([][]float64, len(columnNames))
	// keep[i] is decided on the first row: numeric columns stay, string
	// and other non-coercible columns are dropped from the frame.
	keep := make([]bool, len(columnNames))
	firstRow := true

	for rows.Next() {
		holders := make([]any, len(columnNames))
		for i := range holders {
			holders[i] = new(any)
		}

		if err := rows.Scan(holders...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		timestamp, ok := (*holders[timeIndex].(*any)).(time.Time)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter,
				"time column %q does not hold timestamps", columnNames[timeIndex])
		}

		if firstRow {
			for i := range columnNames {
				if i == timeIndex {
					continue
				}

				_, coercible := coerceFloat(*holders[i].(*any))
				keep[i] = coercible

				if !coercible {
					l.logger.Debug("dropping non-numeric column", zap.String("column", columnNames[i]))
				}
			}

			firstRow = false
		}

		index = append(index, timestamp)

		for i := range columnNames {
			if !keep[i] {
				continue
			}

			value, ok := coerceFloat(*holders[i].(*any))
			if !ok {
				value = math.NaN()
			}

			values[i] = append(values[i], value)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate rows", err)
	}

	if len(index) == 0 {
		return nil, errors.New(errors.ErrCodeNoDataFound, "no rows found in data source")
	}

	keptColumns := []string{}
	keptValues := [][]float64{}

	for i, name := range columnNames {
		if keep[i] {
			keptColumns = append(keptColumns, name)
			keptValues = append(keptValues, values[i])
		}
	}

	return New(index, keptColumns, keptValues)
}

// coerceFloat converts the numeric types the DuckDB driver hands back
// into float64.
func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case int:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	default:
		return 0, false
	}
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
