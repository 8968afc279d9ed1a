package audit

import (
	"context"
)

// Sink receives audit entries. An append failure must never fail the
// operation being audited; callers log it and move on.
type Sink interface {
	Append(ctx context.Context, entry Entry) error
}
