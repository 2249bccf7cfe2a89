package relayer

type Config struct {
	QueueSize        uint // Size of the submit queue
	RetryPollSecs    uint // Interval between retry sweeps of parked intents
	MaxRetryAttempts uint // Max resubmissions before a parked intent is dropped
}

var DefaultConfigSet = Config{
	QueueSize:        100,
	RetryPollSecs:    5,
	MaxRetryAttempts: 5,
}
