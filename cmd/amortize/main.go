package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/iwvelando/amortize/internal/config"
	"github.com/iwvelando/amortize/internal/logging"
	"github.com/iwvelando/amortize/pkg/amortization"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/output"
	"github.com/iwvelando/amortize/pkg/validation"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.StringP("config", "c", "", "path to configuration file")
	rateFlag := flag.StringP("rate", "r", "0", "yearly interest rate in percent")
	yearsFlag := flag.IntP("years", "y", 0, "loan term in years")
	monthsFlag := flag.IntP("months", "m", 0, "additional loan term in months")
	startDateFlag := flag.StringP("start-date", "s", "", "loan start date (YYYY-MM-DD, defaults to today)")
	policyFlag := flag.String("policy", "", "proration policy: whole_month, prorated_by_days_in_month, prorated_by_payment_period")
	outputFormatFlag := flag.StringP("output-format", "o", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// A positional amount selects quick mode; otherwise the loan comes from
	// the config file.
	quickMode := flag.NArg() > 0

	var (
		conf *config.Configuration
		err  error
	)
	if !quickMode {
		location := *configLocation
		if location == "" {
			location = constants.DefaultConfigFile
		}
		conf, err = config.LoadConfiguration(location)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", location, err)
			os.Exit(1)
		}
	}

	// Initialize logging based on config and CLI override
	loggingConfig := config.LoggingConfig{}
	if conf != nil {
		loggingConfig = conf.Logging
	}
	logger, err := logging.NewLogger(loggingConfig, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := ""
	if conf != nil {
		outputFormat = conf.Output.Format
	}
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	var (
		schedule  *amortization.Schedule
		startDate time.Time
	)
	if quickMode {
		schedule, startDate, err = quickSchedule(logger, flag.Args(), *rateFlag, *yearsFlag, *monthsFlag, *startDateFlag, *policyFlag)
		if err != nil {
			logger.Fatal("invalid loan parameters",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	} else {
		// Validate configuration and display any warnings
		warnings := conf.ValidateConfiguration()
		for _, warning := range warnings {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}

		schedule, startDate, err = conf.Loan.ToSchedule(logger)
		if err != nil {
			logger.Fatal("failed to build amortization schedule",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	installments := schedule.GenerateAll(startDate)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(schedule, installments)
	case constants.OutputFormatCSV:
		output.CsvFormat(installments)
	}
}

// quickSchedule builds a schedule from shorthand flags, e.g.
// `amortize -r 5.5 -y 30 250000`.
func quickSchedule(logger *zap.Logger, args []string, rateStr string, years, months int, startDateStr, policy string) (*amortization.Schedule, time.Time, error) {
	if len(args) != 1 {
		return nil, time.Time{}, fmt.Errorf("expected exactly one positional loan amount, got %d arguments", len(args))
	}

	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("invalid loan amount %q: %w", args[0], err)
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("invalid interest rate %q: %w", rateStr, err)
	}
	term, err := amortization.NewTerm(years, months)
	if err != nil {
		return nil, time.Time{}, err
	}

	startDate := datetime.Today()
	if startDateStr != "" {
		startDate, err = datetime.ParseDate(startDateStr)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startDateStr)
		}
	}

	schedule, err := amortization.NewSchedule(logger, amortization.Loan{
		Amount:       amount,
		Term:         term,
		InterestRate: rate,
		Policy:       amortization.ProrationPolicy(policy),
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return schedule, startDate, nil
}
