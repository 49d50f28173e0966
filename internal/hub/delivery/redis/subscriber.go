package redis

import (
	"context"
	"fmt"
	"strings"

	"signage-hub/internal/hub"
)

// Pub/sub channel prefix. Backend services publish to
// signage:user:<id>, signage:company:<id>, signage:screen:<id>.
const channelPrefix = "signage:"

var patterns = []string{
	channelPrefix + "user:*",
	channelPrefix + "company:*",
	channelPrefix + "screen:*",
}

func (s *subscriber) Start() error {
	ctx := context.Background()

	client := s.redis.GetClient()
	s.pubsub = client.PSubscribe(ctx, patterns...)

	// Wait for confirmation that the subscription is live.
	if _, err := s.pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	s.wg.Add(1)
	go s.listen(ctx)

	s.logger.Infof(ctx, "Redis subscriber started on patterns: %v", patterns)
	return nil
}

func (s *subscriber) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warn(ctx, "Redis pubsub channel closed")
				return
			}
			s.handleMessage(ctx, msg.Channel, []byte(msg.Payload))
		case <-s.quit:
			return
		}
	}
}

func (s *subscriber) handleMessage(ctx context.Context, channel string, payload []byte) {
	name, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok {
		s.logger.Warnf(ctx, "Dropping event on unexpected channel: %q", channel)
		return
	}

	if err := s.uc.ProcessControl(ctx, hub.ControlInput{Channel: name, Payload: payload}); err != nil {
		s.logger.Warnf(ctx, "Process control event failed: channel=%s err=%v", channel, err)
	}
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	close(s.quit)
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(ctx, "Failed to close pubsub: %v", err)
		}
	}
	s.wg.Wait()
	s.logger.Info(ctx, "Redis subscriber stopped")
	return nil
}
