package frame

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-charting/internal/logger"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type LoaderTestSuite struct {
	suite.Suite
	loader *Loader
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}

func (suite *LoaderTestSuite) SetupTest() {
	loader, err := NewLoader(logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.loader = loader
}

func (suite *LoaderTestSuite) TearDownTest() {
	suite.NoError(suite.loader.Close())
}

func (suite *LoaderTestSuite) writeCSV(content string) string {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

const testCSV = `Date,Symbol,Open,High,Low,Close,Volume
2024-01-01,AAPL,100,110,95,105,1000
2024-01-02,AAPL,105,106,99,105,2000
2024-01-03,AAPL,105,108,90,95,1500
`

func (suite *LoaderTestSuite) TestLoadCSV() {
	path := suite.writeCSV(testCSV)

	f, err := suite.loader.LoadCSV(path, LoadOptions{TimeColumn: "Date"})
	suite.NoError(err)
	suite.Equal(3, f.Len())

	// The time column becomes the index and the Symbol column is
	// non-numeric, so neither shows up as a frame column.
	suite.Equal([]string{"Open", "High", "Low", "Close", "Volume"}, f.Columns())

	closeValues, err := f.Column(3)
	suite.NoError(err)
	suite.Equal([]float64{105, 105, 95}, closeValues)

	volume, err := f.Column(4)
	suite.NoError(err)
	suite.Equal([]float64{1000, 2000, 1500}, volume)
}

func (suite *LoaderTestSuite) TestLoadCSVIndexOrdered() {
	// Rows intentionally out of order; the loader orders by the time column.
	path := suite.writeCSV(`Date,Open,High,Low,Close
2024-01-03,105,108,90,95
2024-01-01,100,110,95,105
2024-01-02,105,106,99,105
`)

	f, err := suite.loader.LoadCSV(path, LoadOptions{TimeColumn: "Date"})
	suite.NoError(err)

	index := f.Index()
	suite.True(index[0].Before(index[1]))
	suite.True(index[1].Before(index[2]))
}

func (suite *LoaderTestSuite) TestLoadCSVTimeRange() {
	path := suite.writeCSV(testCSV)

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	f, err := suite.loader.LoadCSV(path, LoadOptions{
		TimeColumn: "Date",
		Start:      optional.Some(start),
	})
	suite.NoError(err)
	suite.Equal(2, f.Len())

	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err = suite.loader.LoadCSV(path, LoadOptions{
		TimeColumn: "Date",
		End:        optional.Some(end),
	})
	suite.NoError(err)
	suite.Equal(1, f.Len())
}

func (suite *LoaderTestSuite) TestLoadCSVTimeColumnCaseInsensitive() {
	path := suite.writeCSV(testCSV)

	f, err := suite.loader.LoadCSV(path, LoadOptions{TimeColumn: "date"})
	suite.NoError(err)
	suite.Equal(3, f.Len())
}

func (suite *LoaderTestSuite) TestLoadCSVMissingTimeColumn() {
	path := suite.writeCSV(testCSV)

	f, err := suite.loader.LoadCSV(path, LoadOptions{TimeColumn: "timestamp"})
	suite.Error(err)
	suite.Nil(f)
	suite.True(errors.HasCode(err, errors.ErrCodeColumnNotFound))
}

func (suite *LoaderTestSuite) TestLoadCSVNoRows() {
	path := suite.writeCSV(testCSV)

	f, err := suite.loader.LoadCSV(path, LoadOptions{
		TimeColumn: "Date",
		Start:      optional.Some(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	suite.Error(err)
	suite.Nil(f)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *LoaderTestSuite) TestLoadCSVMissingFile() {
	f, err := suite.loader.LoadCSV(filepath.Join(suite.T().TempDir(), "missing.csv"), LoadOptions{TimeColumn: "Date"})
	suite.Error(err)
	suite.Nil(f)
}
