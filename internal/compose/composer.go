// Package compose turns a classified intent and its catalog context into the
// assistant's reply.
package compose

import (
	"context"

	"github.com/liliang-cn/partchat/internal/domain"
)

// FallbackMessage is returned whenever a reply cannot be produced.
const FallbackMessage = "I apologize, but I encountered an error processing your request. Please try again."

// Input is everything a composer may use for one reply.
type Input struct {
	Text    string
	Intent  domain.Intent
	Context *domain.Context
	// History holds the earlier turns of the session, oldest first.
	History []domain.Message
}

// Composer produces reply text. It never fails; problems degrade to
// FallbackMessage.
type Composer interface {
	Compose(ctx context.Context, in Input) string
}

func contextOf(in Input) *domain.Context {
	if in.Context == nil {
		return &domain.Context{}
	}
	return in.Context
}
