package configs

// Kafka configures the event bus. Without brokers events and notifications
// are written to the log instead.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	// TopicPrefix is prepended to every event type to form the topic name.
	TopicPrefix string `env:"TOPIC_PREFIX" envDefault:"creator-ads."`
}

// Enabled reports whether at least one broker was configured.
func (c Kafka) Enabled() bool {
	return len(c.Brokers) > 0
}
