// Package settings holds the process-wide defaults for OHLCV chart
// rendering: the column name mapping, the default plot type and the
// shared color schema. Render calls never read the package-level
// defaults directly; they capture a Snapshot once and work off that.
package settings

import (
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PlotTypeOHLC and PlotTypeCandlestick are the canonical display names
// of the two built-in price trace styles. Symbolic plot type names are
// matched against them case-insensitively.
const (
	PlotTypeOHLC        = "OHLC"
	PlotTypeCandlestick = "Candlestick"
)

// ColumnNames maps the semantic OHLCV roles to the column labels
// expected in a frame. Matching against frame columns is
// case-insensitive.
type ColumnNames struct {
	Open   string `yaml:"open" json:"open" validate:"required"`
	High   string `yaml:"high" json:"high" validate:"required"`
	Low    string `yaml:"low" json:"low" validate:"required"`
	Close  string `yaml:"close" json:"close" validate:"required"`
	Volume string `yaml:"volume" json:"volume" validate:"required"`
}

// ColorSchema holds the semantic colors shared by the price and volume
// trace builders.
type ColorSchema struct {
	Increasing string `yaml:"increasing" json:"increasing" validate:"required,iscolor"`
	Decreasing string `yaml:"decreasing" json:"decreasing" validate:"required,iscolor"`
	Gray       string `yaml:"gray" json:"gray" validate:"required,iscolor"`
}

// OHLCVSettings is the ohlcv settings namespace.
type OHLCVSettings struct {
	ColumnNames ColumnNames `yaml:"column_names" json:"column_names"`
	PlotType    string      `yaml:"plot_type" json:"plot_type" validate:"required"`
}

// PlottingSettings is the plotting settings namespace.
type PlottingSettings struct {
	ColorSchema ColorSchema `yaml:"color_schema" json:"color_schema"`
}

// Settings is the full settings snapshot. It is a value type holding
// only strings, so copies are deep and safe to hand out.
type Settings struct {
	OHLCV    OHLCVSettings    `yaml:"ohlcv" json:"ohlcv"`
	Plotting PlottingSettings `yaml:"plotting" json:"plotting"`
}

// Default returns a fresh settings value with the library defaults.
func Default() Settings {
	return Settings{
		OHLCV: OHLCVSettings{
			ColumnNames: ColumnNames{
				Open:   "Open",
				High:   "High",
				Low:    "Low",
				Close:  "Close",
				Volume: "Volume",
			},
			PlotType: PlotTypeOHLC,
		},
		Plotting: PlottingSettings{
			ColorSchema: ColorSchema{
				Increasing: "#1b9e76",
				Decreasing: "#d95f02",
				Gray:       "#7f7f7f",
			},
		},
	}
}

// Validate checks the settings against their struct tags.
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeSettingsInvalid, "invalid settings", err)
	}

	return nil
}

// Load reads a YAML settings file on top of the defaults, so partial
// files only override what they mention.
func Load(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrapf(errors.ErrCodeSettingsLoadFailed, err, "failed to read settings file %s", path)
	}

	loaded := Default()
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return Settings{}, errors.Wrapf(errors.ErrCodeSettingsLoadFailed, err, "failed to parse settings file %s", path)
	}

	if err := loaded.Validate(); err != nil {
		return Settings{}, err
	}

	return loaded, nil
}

// GenerateSchema generates a JSON schema for the settings file format.
func (s Settings) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(&s)
	schema.Title = "argo-charting-settings"
	schema.Description = "Settings schema for OHLCV chart rendering"

	return schema
}

var (
	defaultMu       sync.RWMutex
	defaultSettings = Default()
)

// Snapshot returns a copy of the current process-wide defaults.
func Snapshot() Settings {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultSettings
}

// SetDefault replaces the process-wide defaults after validating them.
func SetDefault(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultSettings = s

	return nil
}
