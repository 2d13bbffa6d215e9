// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package genericconf

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var globalFileLogger = &fileLogger{}

// fileLogger writes every record straight to the rotating log file. Runs are
// short, so records are never dropped to keep up with the producer.
type fileLogger struct {
	mutex  sync.Mutex
	writer *lumberjack.Logger
}

func (l *fileLogger) Write(p []byte) (int, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.writer == nil {
		return len(p), nil
	}
	return l.writer.Write(p)
}

func (l *fileLogger) open(config *FileLoggingConfig, filename string) error {
	if err := l.close(); err != nil {
		return err
	}
	writer := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		LocalTime:  config.LocalTime,
		Compress:   config.Compress,
	}
	if config.RotateOnStart {
		if _, err := os.Stat(filename); err == nil {
			if err := writer.Rotate(); err != nil {
				return fmt.Errorf("failed to rotate %v: %w", filename, err)
			}
		}
	}
	l.mutex.Lock()
	l.writer = writer
	l.mutex.Unlock()
	return nil
}

func (l *fileLogger) close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.writer == nil {
		return nil
	}
	err := l.writer.Close()
	l.writer = nil
	return err
}

// CloseLog closes the log file opened by InitLog, if any. Later records only
// go to stderr.
func CloseLog() error {
	return globalFileLogger.close()
}

// InitLog replaces the default logger. Not thread safe.
func InitLog(logType string, logLevel string, fileLoggingConfig *FileLoggingConfig, pathResolver func(string) string) error {
	if err := globalFileLogger.close(); err != nil {
		return fmt.Errorf("failed to close file writer: %w", err)
	}
	output := io.Writer(os.Stderr)
	if fileLoggingConfig.Enable {
		if err := globalFileLogger.open(fileLoggingConfig, pathResolver(fileLoggingConfig.File)); err != nil {
			return err
		}
		output = io.MultiWriter(os.Stderr, globalFileLogger)
	}
	handler, err := HandlerFromLogType(logType, output)
	if err != nil {
		flag.Usage()
		return fmt.Errorf("error parsing log type when creating handler: %w", err)
	}
	slogLevel, err := ToSlogLevel(logLevel)
	if err != nil {
		flag.Usage()
		return fmt.Errorf("error parsing log level: %w", err)
	}

	glogger := log.NewGlogHandler(handler)
	glogger.Verbosity(slogLevel)
	log.SetDefault(log.NewLogger(glogger))
	return nil
}
