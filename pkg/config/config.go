package config

// this holds the resolved configuration values from CLI
var (
	Year            int    // championship year of the session to fetch
	Event           string // event name (e.g. "Hungary")
	SessionCode     string // session code ("R" for race)
	BaseURL         string // base URL of the timing data provider
	CacheDir        string // directory for cached provider responses
	DataDir         string // root directory for raw/processed output files
	DB              string // connection string for the optional database sink
	WaitForServices string // duration to wait for other services to be ready
	LogLevel        string // sets the log level (zap log level values)
	SQLLogLevel     string // sets the log level for sql subsystem
	LogFormat       string // text vs json
	LogConfig       string // path to log config file
	MigrationSource string // location of migration files (overrides embedded)
)
