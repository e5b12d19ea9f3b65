package config

const (
	defaultDataDir   = "~/.local/share/gridiron"
	defaultExportDir = "~/.local/share/gridiron/exports"
	defaultLogDir    = "~/.local/share/gridiron/logs"
	defaultCatalog   = "~/.config/gridiron/catalog.csv"

	defaultBoardRows = 15
	defaultBoardCols = 10

	defaultConfidenceThreshold   = 45.0
	defaultPositionPartialCredit = 0.5
	defaultReviewMargin          = 10.0
	defaultSigmaBase             = 2.0
	defaultSigmaSlope            = 0.1
	defaultTopCandidates         = 3

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
			Catalog:   defaultCatalog,
		},
		Board: Board{
			Rows: defaultBoardRows,
			Cols: defaultBoardCols,
		},
		Scoring: Scoring{
			ConfidenceThreshold:   defaultConfidenceThreshold,
			PositionPartialCredit: defaultPositionPartialCredit,
			ReviewMargin:          defaultReviewMargin,
			SigmaBase:             defaultSigmaBase,
			SigmaSlope:            defaultSigmaSlope,
			TopCandidates:         defaultTopCandidates,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Workers: Workers{
			Scoring: 0,
		},
	}
}
