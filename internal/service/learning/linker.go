package learning

import (
	"context"
	"fmt"

	"github.com/franvarela/lorobot/internal/core"
)

// Linker decides whether an incoming message answers the question that
// immediately precedes it in the same chat. Only the latest stored message is
// ever considered; there is no look-back beyond one message, so a chat's very
// first message can never be linked.
type Linker struct {
	messages core.MessagesRepository
	learner  *Learner
}

func NewLinker(messages core.MessagesRepository, learner *Learner) *Linker {
	return &Linker{messages: messages, learner: learner}
}

// Link returns the id of the answered question, or nil when the message
// stands alone. When a link is found the exchange is handed to the Learner
// before returning.
func (l *Linker) Link(ctx context.Context, chatID, text string) (*int64, error) {
	prev, err := l.messages.LatestByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest message: %w", err)
	}
	if prev == nil || !prev.IsQuestion {
		return nil, nil
	}

	if err := l.learner.Learn(ctx, prev.Text, text); err != nil {
		return nil, fmt.Errorf("failed to learn pattern: %w", err)
	}

	id := prev.ID
	return &id, nil
}
