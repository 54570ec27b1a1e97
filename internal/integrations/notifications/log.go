package notifications

import "context"

// LogNotifier пишет уведомления в лог сервиса
type LogNotifier struct {
	logger Logger
}

func NewLogNotifier(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	l.logger.Info("Notify: event=%s booking=%d member=%d: %s", n.Event, n.BookingID, n.MemberID, n.Message)
	return nil
}
