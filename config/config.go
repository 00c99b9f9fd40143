// Package config registers every configuration key with viper and loads the user's TOML file.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/constant"
	"github.com/squiggle-cli/squiggle/filesystem"
	"github.com/squiggle-cli/squiggle/where"
)

// EnvKeyReplacer maps dotted keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

const fileType = "toml"

// File is the path of the user's config file, whether or not it exists yet.
func File() string {
	return filepath.Join(where.Config(), constant.Squiggle+"."+fileType)
}

// Setup registers defaults and environment bindings, then reads the config file if there is one.
func Setup() error {
	viper.SetConfigName(constant.Squiggle)
	viper.SetConfigType(fileType)
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Squiggle)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return err
}
