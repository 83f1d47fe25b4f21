package configs

import "time"

// Payout configures the periodic payout sweep.
type Payout struct {
	// Enabled turns the background sweeper on. Manual sweeps through the
	// admin endpoint work either way.
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Interval time.Duration `env:"INTERVAL" envDefault:"1m"`
	// Workers bounds how many campaigns are settled in parallel.
	Workers int `env:"WORKERS" envDefault:"4"`
}
