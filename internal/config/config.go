// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/validation"
)

// Configuration holds all configuration for amortize.
type Configuration struct {
	Loan    Loan
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Dates may be written either bare or quoted in
// YYYY-MM-DD form; both decode into time.Time values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(constants.DateLayout),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// StartDate returns the configured loan start date, defaulting to today when
// none is set.
func (conf *Configuration) StartDate() time.Time {
	if conf.Loan.StartDate.IsZero() {
		return datetime.Today()
	}
	return datetime.Normalize(conf.Loan.StartDate)
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for dated entries that can never take effect.
func (conf *Configuration) ValidateConfiguration() []string {
	validator := validation.ScheduleValidator{
		StartDate:  conf.StartDate(),
		TermMonths: conf.Loan.Term.TotalMonths(),
	}

	for _, extra := range conf.Loan.ExtraPayments {
		validator.ExtraPaymentDates = append(validator.ExtraPaymentDates, extra.Date)
	}
	for _, recurring := range conf.Loan.RecurringExtraPayments {
		validator.RecurringSeries = append(validator.RecurringSeries, validation.RecurringSeries{
			StartDate: recurring.StartDate,
			Count:     recurring.Count,
		})
	}
	for _, change := range conf.Loan.InterestRateChanges {
		validator.RateChangeDates = append(validator.RateChangeDates, change.Date)
	}

	return validator.ValidateAll()
}
