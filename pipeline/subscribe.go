package pipeline

import (
	"log/slog"

	"github.com/rohankumardubey/liveoak/codec"
	"github.com/rohankumardubey/liveoak/subscription"
	"github.com/rohankumardubey/liveoak/types"
)

// SubscriptionStage watches responses on their way back out and notifies the
// subscription manager of committed changes (CREATED, UPDATED, DELETED).
// Reads and errors pass through unobserved. Notification is best-effort: an
// encoding failure drops the event, never the response.
type SubscriptionStage struct {
	manager *subscription.Manager
	encoder codec.Encoder
	logger  *slog.Logger
}

// NewSubscriptionStage creates a subscription watcher over manager. A nil
// encoder falls back to the default state encoder.
func NewSubscriptionStage(manager *subscription.Manager, encoder codec.Encoder, logger *slog.Logger) *SubscriptionStage {
	if encoder == nil {
		encoder = codec.NewStateEncoder()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SubscriptionStage{manager: manager, encoder: encoder, logger: logger}
}

// Name implements Stage.
func (s *SubscriptionStage) Name() string { return "subscription" }

// HandleRequest implements Stage. Requests pass straight through.
func (s *SubscriptionStage) HandleRequest(ctx *Context, req *types.ResourceRequest) {
	ctx.Forward(req)
}

// HandleResponse implements Stage.
func (s *SubscriptionStage) HandleResponse(resp *types.ResourceResponse) {
	switch resp.Type() {
	case types.ResponseCreated, types.ResponseUpdated, types.ResponseDeleted:
	default:
		return
	}

	var state *types.ResourceState
	if resp.Resource() != nil {
		encoded, err := s.encoder.Encode(resp.Request().Context(), resp.Resource())
		if err != nil {
			s.logger.Warn("failed to encode change event state",
				"path", resp.Request().Path().String(), "error", err)
		} else {
			state = encoded
		}
	}

	// A create is addressed to the container; the event names the member.
	path := resp.Request().Path()
	if resp.Type() == types.ResponseCreated && resp.Resource() != nil {
		path = path.Child(resp.Resource().ID())
	}

	s.manager.Notify(subscription.Event{
		Type:  resp.Type(),
		Path:  path,
		State: state,
	})
}
