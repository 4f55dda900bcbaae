// Package dedup filters redelivered transport events. Chat gateways retry
// message delivery, so the same message id can arrive twice within seconds;
// processing it twice would double-signup or double-pay.
package dedup

import (
	"context"
	"time"
)

// DefaultWindow is how long a message id is remembered. Redeliveries arrive
// within seconds; anything older is a genuinely new message.
const DefaultWindow = 10 * time.Second

// Filter reports whether a message id was already processed within the
// window, marking it as processed in the same call.
type Filter interface {
	Seen(ctx context.Context, messageID string) (bool, error)
}
