package alerts

import (
	"github.com/rs/zerolog"

	"github.com/pantrywatch/pantrywatch/internal/logger"
)

// Notifier delivers an alert message to wherever the user reads them.
type Notifier interface {
	// Send delivers one notification. Implementations should return an
	// error only when delivery definitively failed.
	Send(subject, body string) error
}

// LogNotifier writes notifications to the structured log. It is the
// default delivery channel when no external provider is configured.
type LogNotifier struct {
	log       zerolog.Logger
	recipient string
}

// NewLogNotifier creates a notifier that logs every message.
func NewLogNotifier() *LogNotifier {
	return NewLogNotifierFor("")
}

// NewLogNotifierFor creates a log notifier that tags each message with
// the intended recipient, so delivery backends added later know where
// the message was meant to go.
func NewLogNotifierFor(recipient string) *LogNotifier {
	return &LogNotifier{
		log:       logger.WithComponent("notifier"),
		recipient: recipient,
	}
}

// Send logs the notification at info level.
func (n *LogNotifier) Send(subject, body string) error {
	evt := n.log.Info().Str("subject", subject)
	if n.recipient != "" {
		evt = evt.Str("recipient", n.recipient)
	}
	evt.Msg(body)
	return nil
}
