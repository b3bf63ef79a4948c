package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramCommandsTotal,
		telegramCallbacksTotal,
		telegramRateLimitTriggeredTotal,
		itemsAddedTotal,
	)
}

var (
	telegramCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_total",
			Help: "Incoming menu commands and text messages by outcome.",
		},
		[]string{"command", "result"}, // result="ok"|"error"|"ignored"
	)

	telegramCallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_callbacks_total",
			Help: "Inline button callbacks by action and outcome.",
		},
		[]string{"action", "result"},
	)

	telegramRateLimitTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limit_triggered_total",
			Help: "Total number of times users have been rate-limited.",
		},
	)

	itemsAddedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "items_added_total",
			Help: "Total shopping-list items added.",
		},
	)
)

func IncCommand(command, result string) {
	telegramCommandsTotal.WithLabelValues(norm(command), norm(result)).Inc()
}

func IncCallback(action, result string) {
	telegramCallbacksTotal.WithLabelValues(norm(action), norm(result)).Inc()
}

func IncRateLimitTriggered() {
	telegramRateLimitTriggeredTotal.Inc()
}

func IncItemAdded() {
	itemsAddedTotal.Inc()
}
