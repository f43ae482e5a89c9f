package types

// Config selects the storage backend, the data file location, and the
// output format used by the command-line front-end.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataFile string `json:"data_file" yaml:"data_file,omitempty"`
	Output   string `json:"output" yaml:"output"`
}

// Supported backend names.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Supported output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputLog  = "log"
)

var knownBackends = map[string]bool{
	BackendJSONL:  true,
	BackendSQLite: true,
}

var knownOutputs = map[string]bool{
	OutputText: true,
	OutputJSON: true,
	OutputLog:  true,
}

// Validate checks that the Config is well-formed. An empty Output is
// accepted and means OutputText.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Output != "" && !knownOutputs[c.Output] {
		return ErrOutputUnknown
	}
	return nil
}
