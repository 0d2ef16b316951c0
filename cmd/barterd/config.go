package main

import (
	"os"
	"path/filepath"

	"github.com/iov-one/barter/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	configFileName  = "config.toml"
	genesisFileName = "genesis.json"
	dbFileName      = "barter.db"
	keyFileName     = "priv.key"
)

// Config is the node configuration. Values are read from
// $BARTER_HOME/config.toml, then BARTER_* environment variables, then
// command line flags.
type Config struct {
	Home     string `mapstructure:"home"`
	ChainID  string `mapstructure:"chain_id"`
	LogLevel string `mapstructure:"log_level"`
	Debug    bool   `mapstructure:"debug"`
	Key      string `mapstructure:"key"`
}

// flagKeys maps configuration keys to the command line flags that
// override them.
var flagKeys = map[string]string{
	"home":      "home",
	"chain_id":  "chain-id",
	"log_level": "log-level",
	"debug":     "debug",
	"key":       "key",
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".barter")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("home", defaultHome())
	v.SetDefault("log_level", "main:info,state:info,*:error")
	v.SetDefault("debug", false)
	v.SetDefault("chain_id", "")
	v.SetDefault("key", "")
}

// loadConfig builds the configuration for a single command run.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BARTER")
	v.AutomaticEnv()

	for key, name := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot bind flag %q: %s", name, err)
		}
	}

	path := filepath.Join(v.GetString("home"), configFileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot read %s: %s", path, err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode configuration: %s", err)
	}
	if conf.Key == "" {
		conf.Key = filepath.Join(conf.Home, keyFileName)
	}
	return &conf, nil
}

// saveConfig writes the chain id into the home configuration file.
func saveConfig(conf *Config) error {
	v := viper.New()
	v.Set("chain_id", conf.ChainID)
	v.Set("log_level", conf.LogLevel)
	path := filepath.Join(conf.Home, configFileName)
	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "cannot write %s: %s", path, err)
	}
	return nil
}

// newLogger returns a tendermint logger filtered with the configured
// level, for example "main:info,state:debug,*:error".
func newLogger(conf *Config) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	if conf.Debug {
		return logger, nil
	}
	logger, err := tmflags.ParseLogLevel(conf.LogLevel, logger, "error")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return logger, nil
}
