package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const OperationIDKey ctxKey = "op_id"

func WithOperationID(ctx context.Context, opID string) context.Context {
	return context.WithValue(ctx, OperationIDKey, opID)
}

func OperationID(ctx context.Context) string {
	v, _ := ctx.Value(OperationIDKey).(string)
	return v
}

// Time logs the duration of the named operation when the returned func runs.
// Pass the address of the caller's named error result.
func Time(ctx context.Context, log zerolog.Logger, name string) func(errp *error) {
	start := time.Now()
	opID := OperationID(ctx)

	return func(errp *error) {
		dur := time.Since(start)
		if errp != nil && *errp != nil {
			log.Warn().Str("op", name).Str("op_id", opID).Int64("dur_ms", dur.Milliseconds()).Err(*errp).Msg("operation failed")
			return
		}
		log.Debug().Str("op", name).Str("op_id", opID).Int64("dur_ms", dur.Milliseconds()).Msg("operation done")
	}
}
