package logging

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// RecoverPanic logs a recovered panic with its stack instead of crashing.
// It must be deferred directly: defer logging.RecoverPanic(ctx, "parser").
func RecoverPanic(ctx context.Context, where string) {
	r := recover()
	if r == nil {
		return
	}

	log := FromContext(ctx)
	if log.GetLevel() == zerolog.Disabled {
		fmt.Fprintf(os.Stderr, "PANIC in %s: %v\n%s", where, r, debug.Stack())
		return
	}

	log.Error().
		Str("where", where).
		Interface("panic", r).
		Str("go_version", runtime.Version()).
		Str("stack", string(debug.Stack())).
		Msg("recovered from panic")
}
