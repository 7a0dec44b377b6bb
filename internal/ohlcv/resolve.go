package ohlcv

import (
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-charting/internal/settings"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
)

// columnIndexes holds the positional index of each resolved OHLCV role.
// Volume is optional; its absence is the auto-detection signal for the
// volume panel.
type columnIndexes struct {
	Open   int
	High   int
	Low    int
	Close  int
	Volume optional.Option[int]
}

// findColumn returns the position of the first column whose label
// matches case-insensitively, or -1. When duplicate case-insensitive
// labels exist, the first match in column order wins.
func findColumn(columns []string, label string) int {
	for i, column := range columns {
		if strings.EqualFold(column, label) {
			return i
		}
	}

	return -1
}

// resolveColumns maps the four required price roles and the optional
// volume role to positions in the column list. A required role with no
// match is a MissingColumnError; a missing volume label is not an error.
func resolveColumns(columns []string, names settings.ColumnNames) (columnIndexes, error) {
	required := []struct {
		role  string
		label string
		out   *int
	}{
		{"open", names.Open, nil},
		{"high", names.High, nil},
		{"low", names.Low, nil},
		{"close", names.Close, nil},
	}

	var resolved columnIndexes

	required[0].out = &resolved.Open
	required[1].out = &resolved.High
	required[2].out = &resolved.Low
	required[3].out = &resolved.Close

	for _, r := range required {
		i := findColumn(columns, r.label)
		if i == -1 {
			return columnIndexes{}, errors.Wrap(errors.ErrCodeColumnNotFound, "failed to resolve columns",
				errors.NewMissingColumnError(r.role, r.label, columns))
		}

		*r.out = i
	}

	if i := findColumn(columns, names.Volume); i != -1 {
		resolved.Volume = optional.Some(i)
	} else {
		resolved.Volume = optional.None[int]()
	}

	return resolved, nil
}
