package configs

import "time"

// Redis configures the lease that keeps payout sweeps from overlapping
// across replicas. With an empty Addr only the in-process guard is used.
type Redis struct {
	// Addr is either host:port or a redis:// URL.
	Addr    string        `env:"ADDRESS"`
	LockKey string        `env:"LOCK_KEY" envDefault:"creator-ads:payout-sweep"`
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"5m"`
}

// Enabled reports whether a Redis address was configured.
func (c Redis) Enabled() bool {
	return c.Addr != ""
}
