package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Grrwahrr/tari/infrastructure/logger"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultDataDirname    = ".tari-horizon"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "horizonverify.log"
	defaultErrLogFilename = "horizonverify_err.log"
	defaultLogLevel       = "info"
	defaultHeaderCache    = 2000

	// DBTypeLevelDB selects the goleveldb driver
	DBTypeLevelDB = "leveldb"

	// DBTypeBolt selects the bbolt driver
	DBTypeBolt = "bbolt"

	// HorizonHeightTip makes the tip height the horizon height
	HorizonHeightTip = -1
)

var (
	// DefaultAppDir is the default home directory for horizonverify.
	DefaultAppDir = defaultAppDir()

	defaultDataDir = filepath.Join(DefaultAppDir, "data")
)

// Flags defines the configuration options for horizonverify.
type Flags struct {
	DataDir         string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir          string `long:"logdir" description:"Directory to log output."`
	DBType          string `long:"dbtype" choice:"leveldb" choice:"bbolt" description:"Database backend"`
	HorizonHeight   int64  `long:"horizon-height" description:"Height at which the horizon state is validated (-1 for the tip)"`
	VerifyHeaders   bool   `long:"verify-headers" description:"Replay header validation for every stored header before validating the horizon state"`
	Workers         int    `long:"workers" description:"Number of goroutines used by --verify-headers"`
	HeaderCacheSize int    `long:"header-cache-size" description:"Number of headers kept in memory"`
	LogLevel        string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	Profile         string `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65536"`
	NetworkFlags
}

// Config defines the configuration options for horizonverify.
//
// See LoadConfig for details on the configuration load process.
type Config struct {
	*Flags
}

func defaultAppDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirname
	}
	return filepath.Join(homeDir, defaultDataDirname)
}

func defaultFlags() *Flags {
	return &Flags{
		DataDir:         defaultDataDir,
		LogDir:          filepath.Join(DefaultAppDir, defaultLogDirname),
		DBType:          DBTypeLevelDB,
		HorizonHeight:   HorizonHeightTip,
		Workers:         runtime.NumCPU(),
		HeaderCacheSize: defaultHeaderCache,
		LogLevel:        defaultLogLevel,
	}
}

// LoadConfig parses args into a Config, resolves the active network and
// validates the result. It sets the log levels but opens no files.
//
// The above results in horizonverify functioning properly without any config
// settings while still allowing the user to override settings with command
// line options.
func LoadConfig(args []string) (*Config, error) {
	cfgFlags := defaultFlags()
	parser := flags.NewParser(cfgFlags, flags.HelpFlag)
	_, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Flags: cfgFlags}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	// Append the network type to the data and log directories so they
	// are "namespaced" per network.
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfg.DataDir), cfg.NetParams().Name)
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir), cfg.NetParams().Name)

	if cfg.HorizonHeight < HorizonHeightTip {
		return nil, errors.Errorf("invalid horizon height %d", cfg.HorizonHeight)
	}
	if cfg.Workers < 1 {
		return nil, errors.Errorf("--workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.HeaderCacheSize < 1 {
		return nil, errors.Errorf("--header-cache-size must be at least 1, got %d", cfg.HeaderCacheSize)
	}

	// Parse, validate, and set debug log level(s).
	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogFiles returns the paths of the log file and the error log file
func (cfg *Config) LogFiles() (logFile, errLogFile string) {
	return filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
