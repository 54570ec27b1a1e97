package notifications

import (
	"context"
	"errors"
	"sync"
)

// Composite рассылает уведомление во все каналы параллельно.
// Ошибка одного канала не мешает остальным
type Composite struct {
	notifiers []Notifier
}

func NewComposite(notifiers ...Notifier) *Composite {
	return &Composite{notifiers: notifiers}
}

// Len количество подключённых каналов
func (c *Composite) Len() int {
	return len(c.notifiers)
}

func (c *Composite) Notify(ctx context.Context, n Notification) error {
	errs := make([]error, len(c.notifiers))

	var wg sync.WaitGroup
	for i, notifier := range c.notifiers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = notifier.Notify(ctx, n)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}
