package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be > 0 (got %s)", c.Server.RequestTimeout)
	}

	if c.Server.WriteRateLimit < 0 {
		return fmt.Errorf("server.write_rate_limit must be >= 0 (got %d)", c.Server.WriteRateLimit)
	}

	if err := c.Circulation.validate(); err != nil {
		return fmt.Errorf("circulation: %w", err)
	}

	if err := c.Stats.validate(); err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	if err := c.Retry.validate(); err != nil {
		return fmt.Errorf("retry: %w", err)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (c *CirculationConfig) validate() error {
	if c.LoanPeriod < time.Hour {
		return fmt.Errorf("loan_period must be at least 1h (got %s)", c.LoanPeriod)
	}
	if c.MaxLoanDays < 1 {
		return fmt.Errorf("max_loan_days must be >= 1 (got %d)", c.MaxLoanDays)
	}
	if c.LoanPeriod > time.Duration(c.MaxLoanDays)*24*time.Hour {
		return fmt.Errorf("loan_period %s exceeds max_loan_days %d", c.LoanPeriod, c.MaxLoanDays)
	}
	if c.MaxQuantityPerRequest < 1 {
		return fmt.Errorf("max_quantity_per_request must be >= 1 (got %d)", c.MaxQuantityPerRequest)
	}
	return nil
}

func (s *StatsConfig) validate() error {
	if s.MaxTrendDays < 1 {
		return fmt.Errorf("max_trend_days must be >= 1 (got %d)", s.MaxTrendDays)
	}
	if s.PopularLimit < 1 {
		return fmt.Errorf("popular_limit must be >= 1 (got %d)", s.PopularLimit)
	}
	if s.LoaderBatchCapacity < 1 {
		return fmt.Errorf("loader_batch_capacity must be >= 1 (got %d)", s.LoaderBatchCapacity)
	}
	return nil
}

func (r *RetryConfig) validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", r.MaxAttempts)
	}
	if r.InitialInterval <= 0 || r.MaxInterval < r.InitialInterval {
		return fmt.Errorf("intervals must satisfy 0 < initial_interval <= max_interval (got %s, %s)", r.InitialInterval, r.MaxInterval)
	}
	return nil
}
