package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhamidi/javapoet/java"
)

// config overrides the settings of declaration files. It is read from
// javapoet.{yaml,toml,json}, JAVAPOET_* variables and flags, in increasing
// priority.
type config struct {
	Indent              string   `mapstructure:"indent"`
	ColumnLimit         int      `mapstructure:"column_limit"`
	SkipJavaLangImports bool     `mapstructure:"skip_java_lang_imports"`
	StaticImports       []string `mapstructure:"static_imports"`
	AlwaysQualify       []string `mapstructure:"always_qualify"`

	set map[string]bool
}

var configFlags = map[string]string{
	"indent":                 "indent",
	"column_limit":           "column-limit",
	"skip_java_lang_imports": "skip-java-lang-imports",
	"static_imports":         "static-import",
	"always_qualify":         "always-qualify",
}

func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default ./javapoet.yaml)")
	flags.String("indent", "", "indentation unit")
	flags.Int("column-limit", 0, "column where long lines wrap")
	flags.Bool("skip-java-lang-imports", false, "omit imports of java.lang classes")
	flags.StringSlice("static-import", nil, "static import signature, such as java.util.Collections.*")
	flags.StringSlice("always-qualify", nil, "simple name that is never imported")
}

func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()
	v.SetConfigName("javapoet")
	v.AddConfigPath(".")
	v.SetEnvPrefix("JAVAPOET")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	}

	for key, flag := range configFlags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", flag)
		}
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind env %s", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	} else {
		log.Debugf("using config file %s", v.ConfigFileUsed())
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	cfg.set = map[string]bool{}
	for key := range configFlags {
		cfg.set[key] = v.IsSet(key)
	}
	return &cfg, nil
}

// apply overrides the settings of f that the config sets.
func (c *config) apply(f *java.File) {
	if c.set["indent"] && c.Indent != "" {
		f.Indent = c.Indent
	}
	if c.set["column_limit"] && c.ColumnLimit > 0 {
		f.ColumnLimit = c.ColumnLimit
	}
	if c.set["skip_java_lang_imports"] {
		f.SkipJavaLangImports = c.SkipJavaLangImports
	}
	f.StaticImports = append(f.StaticImports, c.StaticImports...)
	if f.Type != nil {
		f.Type.AlwaysQualify = append(f.Type.AlwaysQualify, c.AlwaysQualify...)
	}
}
