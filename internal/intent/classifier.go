// Package intent turns a free-text message into a typed domain.Intent.
package intent

import (
	"context"

	"github.com/liliang-cn/partchat/internal/domain"
)

// Classifier maps a user message to an Intent. Implementations never fail:
// they fall back to a defined intent instead.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.Intent
}

// Fallback is returned when a classifier cannot produce a usable answer.
var Fallback = domain.Intent{Type: domain.IntentGeneral, Confidence: 0.5}
