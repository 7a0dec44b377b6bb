package ohlcv

import (
	"testing"

	"github.com/rxtech-lab/argo-charting/internal/settings"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ResolveTestSuite struct {
	suite.Suite
}

func TestResolveSuite(t *testing.T) {
	suite.Run(t, new(ResolveTestSuite))
}

func (suite *ResolveTestSuite) TestResolveCaseInsensitive() {
	names := settings.Default().OHLCV.ColumnNames

	tests := []struct {
		name    string
		columns []string
	}{
		{"title case", []string{"Date", "Open", "High", "Low", "Close", "Volume"}},
		{"upper case", []string{"DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME"}},
		{"lower case", []string{"date", "open", "high", "low", "close", "volume"}},
		{"mixed case", []string{"date", "oPeN", "hIgH", "LoW", "cLOSe", "voLUMe"}},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			resolved, err := resolveColumns(tc.columns, names)

			suite.NoError(err)
			suite.Equal(1, resolved.Open)
			suite.Equal(2, resolved.High)
			suite.Equal(3, resolved.Low)
			suite.Equal(4, resolved.Close)
			suite.True(resolved.Volume.IsSome())
			suite.Equal(5, resolved.Volume.Unwrap())
		})
	}
}

func (suite *ResolveTestSuite) TestResolveVolumeAbsent() {
	names := settings.Default().OHLCV.ColumnNames

	resolved, err := resolveColumns([]string{"Open", "High", "Low", "Close"}, names)

	suite.NoError(err)
	suite.True(resolved.Volume.IsNone())
}

func (suite *ResolveTestSuite) TestResolveMissingRequiredColumn() {
	names := settings.Default().OHLCV.ColumnNames

	resolved, err := resolveColumns([]string{"Open", "High", "Low", "Volume"}, names)

	suite.Error(err)
	suite.Equal(columnIndexes{}, resolved)
	suite.True(errors.HasCode(err, errors.ErrCodeColumnNotFound))
	suite.True(errors.IsMissingColumnError(err))

	var missing *errors.MissingColumnError
	suite.True(errors.As(err, &missing))
	suite.Equal("close", missing.Role)
	suite.Equal("Close", missing.Label)
}

func (suite *ResolveTestSuite) TestResolveDuplicateLabelsFirstMatchWins() {
	names := settings.Default().OHLCV.ColumnNames

	// Both "Open" and "OPEN" match case-insensitively; the first column
	// in order is the deterministic winner.
	resolved, err := resolveColumns([]string{"Open", "OPEN", "High", "Low", "Close"}, names)

	suite.NoError(err)
	suite.Equal(0, resolved.Open)
}

func (suite *ResolveTestSuite) TestResolveCustomMapping() {
	names := settings.ColumnNames{
		Open:   "o",
		High:   "h",
		Low:    "l",
		Close:  "c",
		Volume: "v",
	}

	resolved, err := resolveColumns([]string{"c", "o", "h", "l", "v"}, names)

	suite.NoError(err)
	suite.Equal(1, resolved.Open)
	suite.Equal(2, resolved.High)
	suite.Equal(3, resolved.Low)
	suite.Equal(0, resolved.Close)
	suite.Equal(4, resolved.Volume.Unwrap())
}

func (suite *ResolveTestSuite) TestResolveColumnOrderIgnored() {
	names := settings.Default().OHLCV.ColumnNames

	resolved, err := resolveColumns([]string{"Volume", "Close", "Low", "High", "Open"}, names)

	suite.NoError(err)
	suite.Equal(4, resolved.Open)
	suite.Equal(3, resolved.High)
	suite.Equal(2, resolved.Low)
	suite.Equal(1, resolved.Close)
	suite.Equal(0, resolved.Volume.Unwrap())
}
