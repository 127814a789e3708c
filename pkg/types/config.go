package types

// ConvertConfig holds settings for the conversion stage. The transform rules
// themselves are fixed (the placeholder strings and schema markers are part
// of the Transkribus compatibility contract); only the output layout is
// configurable.
type ConvertConfig struct {
	// OutputSuffix is appended to the filename stem of every converted file
	// (default "_transkribus").
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix"`

	// BatchDirName is the folder created inside the input directory when a
	// directory run has no explicit output hint (default "transkribus_converted").
	BatchDirName string `json:"batch_dir_name" yaml:"batch_dir_name"`

	// InputExt is the file extension selected in directory mode (default ".xml").
	InputExt string `json:"input_ext" yaml:"input_ext"`

	// ReportName is the YAML report filename written into the output directory
	// after a directory run (default "conversion-report.yaml"); "" disables it.
	ReportName string `json:"report_name,omitempty" yaml:"report_name,omitempty"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// DBPath is the SQLite database file for conversion history
	// (default "pagexml-convert.db" in the working directory).
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default number of records listed by the history
	// command (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all stage configurations.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// DefaultConfig returns the configuration used when no config file or
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Convert: ConvertConfig{
			OutputSuffix: "_transkribus",
			BatchDirName: "transkribus_converted",
			InputExt:     ".xml",
			ReportName:   "conversion-report.yaml",
		},
		History: HistoryConfig{
			DBPath:     "pagexml-convert.db",
			MaxResults: 20,
		},
	}
}
