package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"schema-verify/internal/dialect"
	"schema-verify/internal/schema"
	"schema-verify/internal/verify"
)

// TargetConfig describes one live database instance in the config file.
type TargetConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
	Active bool   `mapstructure:"active"`
}

// GetActiveTargets returns the targets marked active in the config.
func GetActiveTargets() ([]TargetConfig, error) {
	var configs []TargetConfig

	if err := viper.UnmarshalKey("targets", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse targets config: %w", err)
	}

	var active []TargetConfig
	for _, c := range configs {
		if c.Active {
			active = append(active, c)
		}
	}

	if len(active) == 0 {
		return nil, fmt.Errorf("no active target found in config (set active: true)")
	}
	return active, nil
}

type supplementalConfig struct {
	Dialect string `mapstructure:"dialect"`
	Table   string `mapstructure:"table"`
	Column  string `mapstructure:"column"`
	Query   string `mapstructure:"query"`
	Expect  string `mapstructure:"expect"`
}

type knownNullableConfig struct {
	Dialect string `mapstructure:"dialect"`
	Table   string `mapstructure:"table"`
	Column  string `mapstructure:"column"`
}

// GetVerifyOptions builds the comparator configuration: the built-in
// known-debt entries plus whatever the config file adds.
func GetVerifyOptions() (verify.Options, error) {
	opts := verify.DefaultOptions()

	var supplementals []supplementalConfig
	if err := viper.UnmarshalKey("supplemental", &supplementals); err != nil {
		return opts, fmt.Errorf("failed to parse supplemental config: %w", err)
	}
	for _, s := range supplementals {
		opts.Supplemental = append(opts.Supplemental, verify.SupplementalQuery{
			Dialect: dialect.ID(s.Dialect),
			Table:   s.Table,
			Column:  s.Column,
			Query:   s.Query,
			Expect:  s.Expect,
		})
	}

	var debts []knownNullableConfig
	if err := viper.UnmarshalKey("known_nullable", &debts); err != nil {
		return opts, fmt.Errorf("failed to parse known_nullable config: %w", err)
	}
	for _, d := range debts {
		id := dialect.ID(d.Dialect)
		opts.KnownNullable[id] = append(opts.KnownNullable[id],
			schema.ObjectKey{Table: d.Table, Name: d.Column})
	}

	return opts, nil
}
