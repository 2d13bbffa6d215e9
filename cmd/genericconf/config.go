// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package genericconf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	flag "github.com/spf13/pflag"
)

type ConfConfig struct {
	Dump      bool     `koanf:"dump"`
	EnvPrefix string   `koanf:"env-prefix"`
	File      []string `koanf:"file"`
	String    string   `koanf:"string"`
}

func ConfConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".dump", ConfConfigDefault.Dump, "print out currently active configuration file")
	f.String(prefix+".env-prefix", ConfConfigDefault.EnvPrefix, "environment variables with given prefix will be loaded as configuration values")
	f.StringSlice(prefix+".file", ConfConfigDefault.File, "name of configuration file")
	f.String(prefix+".string", ConfConfigDefault.String, "configuration as JSON string")
}

var ConfConfigDefault = ConfConfig{
	Dump:      false,
	EnvPrefix: "",
	File:      nil,
	String:    "",
}

// HandlerFromLogType returns a log handler writing to output in the given
// format: "plaintext" or "json".
func HandlerFromLogType(logType string, output io.Writer) (slog.Handler, error) {
	if logType == "plaintext" {
		return log.NewTerminalHandler(output, false), nil
	} else if logType == "json" {
		return log.JSONHandler(output), nil
	}
	return nil, errors.New("invalid log type")
}

// ToSlogLevel accepts a level name or a legacy numeric level (1=error .. 5=trace).
func ToSlogLevel(logLevel string) (slog.Level, error) {
	switch strings.ToLower(logLevel) {
	case "crit":
		return log.LevelCrit, nil
	case "error":
		return log.LevelError, nil
	case "warn":
		return log.LevelWarn, nil
	case "info":
		return log.LevelInfo, nil
	case "debug":
		return log.LevelDebug, nil
	case "trace":
		return log.LevelTrace, nil
	}
	legacy, err := strconv.Atoi(logLevel)
	if err != nil || legacy < 0 || legacy > 5 {
		return log.LevelInfo, fmt.Errorf("invalid log level %q", logLevel)
	}
	return log.FromLegacyLevel(legacy), nil
}

type FileLoggingConfig struct {
	Enable        bool   `koanf:"enable"`
	File          string `koanf:"file"`
	MaxSize       int    `koanf:"max-size"`
	MaxAge        int    `koanf:"max-age"`
	MaxBackups    int    `koanf:"max-backups"`
	LocalTime     bool   `koanf:"local-time"`
	Compress      bool   `koanf:"compress"`
	RotateOnStart bool   `koanf:"rotate-on-start"`
}

var DefaultFileLoggingConfig = FileLoggingConfig{
	Enable:        false,
	File:          "logs/txtable.log",
	MaxSize:       20,    // 20Mb, one run rarely fills it
	MaxAge:        30,    // days
	MaxBackups:    10,    // keep the logs of the last 10 runs
	LocalTime:     false, // use UTC time
	Compress:      true,
	RotateOnStart: true,
}

func FileLoggingConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Bool(prefix+".enable", DefaultFileLoggingConfig.Enable, "enable logging to file")
	f.String(prefix+".file", DefaultFileLoggingConfig.File, "path to log file")
	f.Int(prefix+".max-size", DefaultFileLoggingConfig.MaxSize, "log file size in Mb that will trigger log file rotation (0 = trigger disabled)")
	f.Int(prefix+".max-age", DefaultFileLoggingConfig.MaxAge, "maximum number of days to retain old log files based on the timestamp encoded in their filename (0 = no limit)")
	f.Int(prefix+".max-backups", DefaultFileLoggingConfig.MaxBackups, "maximum number of old log files to retain (0 = no limit)")
	f.Bool(prefix+".local-time", DefaultFileLoggingConfig.LocalTime, "if true: local time will be used in old log filename timestamps")
	f.Bool(prefix+".compress", DefaultFileLoggingConfig.Compress, "enable compression of old log files")
	f.Bool(prefix+".rotate-on-start", DefaultFileLoggingConfig.RotateOnStart, "start a new log file on every run")
}
