package mq

// Exchange Names
const (
	ExchangeMatchEvents = "match_events"
	ExchangeUserEvents  = "user_events"
	ExchangeLog         = "log"
)

// Exchange Types
const (
	ExchangeTypeFanout = "fanout"
)

// Queue Names
const (
	QueueMatchUserEvents = "match_user_events_queue"
	QueueLog             = "log_queue"
	QueuePushMatchEvents = "push_match_events_queue"
)
