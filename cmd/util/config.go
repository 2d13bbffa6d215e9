// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package util

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
)

// BeginCommonParse parses args into f and layers configuration sources in
// increasing precedence: conf files, conf string, environment, command line.
func BeginCommonParse(f *flag.FlagSet, args []string) (*koanf.Koanf, error) {
	if err := f.Parse(args); err != nil {
		return nil, err
	}

	if f.NArg() != 0 {
		// Unexpected number of parameters
		return nil, errors.New("unexpected number of parameters")
	}

	var k = koanf.New(".")

	// Load defaults from command line defaults, which will be overridden below
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, errors.Wrap(err, "error loading defaults")
	}

	configFiles := k.Strings("conf.file")
	for _, configFile := range configFiles {
		if len(configFile) == 0 {
			continue
		}
		if err := k.Load(file.Provider(configFile), json.Parser()); err != nil {
			return nil, errors.Wrapf(err, "error loading local config file %q", configFile)
		}
	}

	if confString := k.String("conf.string"); len(confString) > 0 {
		if err := k.Load(rawbytes.Provider([]byte(confString)), json.Parser()); err != nil {
			return nil, errors.Wrap(err, "error loading config string")
		}
	}

	if envPrefix := k.String("conf.env-prefix"); len(envPrefix) != 0 {
		if err := loadEnvironmentVariables(k, envPrefix); err != nil {
			return nil, errors.Wrap(err, "error loading environment variables")
		}
	}

	// Command line overrides config file or config string
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, errors.Wrap(err, "error loading command line")
	}

	return k, nil
}

// With envPrefix "TXTABLE", TXTABLE_TX_TABLE__MAX_TXS sets tx-table.max-txs.
func loadEnvironmentVariables(k *koanf.Koanf, envPrefix string) error {
	envPrefix = strings.ToUpper(envPrefix) + "_"
	return k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lowered := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(strings.ReplaceAll(lowered, "__", "."), "_", "-")
	}), nil)
}

func EndCommonParse(k *koanf.Koanf, config interface{}) error {
	decoderConfig := mapstructure.DecoderConfig{
		ErrorUnused: true,

		// Default values
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(",")),
		Metadata:         nil,
		Result:           config,
		TagName:          "koanf",
		WeaklyTypedInput: true,
	}
	err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{DecoderConfig: &decoderConfig})
	if err != nil {
		return err
	}

	return nil
}
