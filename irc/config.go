// Copyright (c) 2012-2014 Jeremy Latt
// Copyright (c) 2014-2015 Edmund Huber
// Copyright (c) 2016-2017 Daniel Oaks <daniel@danieloaks.net>
// released under the MIT license

package irc

import (
	"fmt"
	"os"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"gopkg.in/yaml.v2"

	"github.com/ergochat/ircwire/irc/logger"
	"github.com/ergochat/ircwire/irc/utils"
)

// SessionConfig controls the protocol session.
type SessionConfig struct {
	MaxLineLengthString string `yaml:"max-line-length"`
	MaxLineLength       int    `yaml:"-"`
	MaxReadLengthString string `yaml:"max-read-length"`
	MaxReadLength       int    `yaml:"-"`
	// 0 means the queues are unbounded
	MaxQueueLength int    `yaml:"max-queue-length"`
	PongServer     string `yaml:"pong-server"`
}

// Config defines the overall configuration.
type Config struct {
	Session SessionConfig

	Logging []logger.LoggingConfig

	Filename string `yaml:"-"`
}

// LoadConfig loads the given YAML configuration file.
func LoadConfig(filename string) (config *Config, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err = ParseConfig(data)
	if err != nil {
		return nil, err
	}
	config.Filename = filename
	return config, nil
}

// ParseConfig parses and validates YAML configuration data.
func ParseConfig(data []byte) (config *Config, err error) {
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = new(Config)
	}
	if err = config.prepare(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns the configuration used when no file is given:
// 512-byte lines, unbounded queues, warnings and errors to stderr.
func DefaultConfig() *Config {
	config := &Config{
		Logging: []logger.LoggingConfig{
			{
				Method:      "stderr",
				TypeString:  "* -rawinput -rawoutput",
				LevelString: "warn",
			},
		},
	}
	if err := config.prepare(); err != nil {
		// the defaults are static, this can't happen
		panic(err)
	}
	return config
}

func (config *Config) prepare() (err error) {
	if config.Session.MaxLineLengthString == "" {
		config.Session.MaxLineLengthString = "512B"
	}
	maxLineLength, err := bytefmt.ToBytes(config.Session.MaxLineLengthString)
	if err != nil {
		return fmt.Errorf("Could not parse max-line-length (make sure it only contains whole numbers): %s", err.Error())
	}
	if maxLineLength < DefaultMaxLineLen {
		return ErrLineLengthTooSmall
	}
	config.Session.MaxLineLength = int(maxLineLength)

	if config.Session.MaxReadLengthString == "" {
		config.Session.MaxReadLengthString = "8K"
	}
	maxReadLength, err := bytefmt.ToBytes(config.Session.MaxReadLengthString)
	if err != nil {
		return fmt.Errorf("Could not parse max-read-length (make sure it only contains whole numbers): %s", err.Error())
	}
	if maxReadLength < uint64(config.Session.MaxLineLength) {
		maxReadLength = uint64(config.Session.MaxLineLength)
	}
	config.Session.MaxReadLength = int(maxReadLength)

	if config.Session.PongServer != "" && !utils.IsHostname(config.Session.PongServer) {
		return ErrPongServerInvalid
	}

	if config.Session.MaxQueueLength < 0 {
		config.Session.MaxQueueLength = 0
	}

	var newLogConfigs []logger.LoggingConfig
	for _, logConfig := range config.Logging {
		// methods
		methods := make(map[string]bool)
		for _, method := range strings.Split(logConfig.Method, " ") {
			if len(method) > 0 {
				methods[strings.ToLower(method)] = true
			}
		}
		if methods["file"] && logConfig.Filename == "" {
			return ErrLoggerFilenameMissing
		}
		logConfig.MethodFile = methods["file"]
		logConfig.MethodStdout = methods["stdout"]
		logConfig.MethodStderr = methods["stderr"]

		// levels
		level, exists := logger.LogLevelNames[strings.ToLower(logConfig.LevelString)]
		if !exists {
			return fmt.Errorf("Could not translate log level [%s]", logConfig.LevelString)
		}
		logConfig.Level = level

		// types
		logConfig.Types = nil
		logConfig.ExcludedTypes = nil
		for _, typeStr := range strings.Split(logConfig.TypeString, " ") {
			if len(typeStr) == 0 {
				continue
			}
			if typeStr == "-" {
				return ErrLoggerExcludeEmpty
			}
			if typeStr[0] == '-' {
				typeStr = typeStr[1:]
				logConfig.ExcludedTypes = append(logConfig.ExcludedTypes, typeStr)
			} else {
				logConfig.Types = append(logConfig.Types, typeStr)
			}
		}
		if len(logConfig.Types) < 1 {
			return ErrLoggerHasNoTypes
		}

		newLogConfigs = append(newLogConfigs, logConfig)
	}
	config.Logging = newLogConfigs

	return nil
}
