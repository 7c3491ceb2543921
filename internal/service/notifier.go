package service

import (
	"context"

	"github.com/quickflicks/quickflicks/internal/logger"
)

// LogNotifier is a [Notifier] that writes the reset token to the log
// instead of sending mail. It stands in until an outbound mail integration
// exists; operators copy the token from the log during manual recovery.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier constructs a [LogNotifier].
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// SendPasswordReset logs the reset token for the given e-mail. Never fails.
func (n *LogNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	n.logger.Info().
		Str("func", "*LogNotifier.SendPasswordReset").
		Str("email", email).
		Str("reset_token", token).
		Msg("password reset token issued")
	return nil
}
