package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const publishTimeout = 5 * time.Second

// Notifier hands events to a Publisher in the background.
type Notifier struct {
	pub    Publisher
	logger *slog.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewNotifier(pub Publisher, logger *slog.Logger) *Notifier {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Notifier{pub: pub, logger: logger, now: time.Now}
}

// Notify publishes e asynchronously (non-blocking). A zero At is stamped with
// the current time.
func (n *Notifier) Notify(e Event) {
	if n == nil {
		return
	}
	if e.At.IsZero() {
		e.At = n.now().UTC()
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := n.pub.Publish(ctx, e); err != nil {
			n.logger.Warn("event publish failed", "type", e.Type, "error", err)
			return
		}
		n.logger.Debug("event published", "type", e.Type, "movie_id", e.MovieID, "proposal_id", e.ProposalID)
	}()
}

// Close waits for in-flight publishes and closes the publisher.
func (n *Notifier) Close() error {
	n.wg.Wait()
	return n.pub.Close()
}
