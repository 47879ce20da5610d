package logger

import (
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
)

func TestGetReturnsSingleton(t *testing.T) {
	first := Get(0)
	if first == nil {
		t.Fatal("Get returned nil")
	}
	second := Get(-1)
	if first != second {
		t.Error("Get should return the same instance regardless of later levels")
	}
}

func TestGetFallsBackToNoop(t *testing.T) {
	Get(0)
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	// once has already fired in this process, so initialization is skipped
	// and the noop fallback is the only safe return.
	lgr := Get(0)
	if lgr != &defaultNoopLogger {
		t.Error("Get should return the noop logger when initialization is unavailable")
	}
}

func TestGoVersionNeverEmpty(t *testing.T) {
	got := goVersion()
	if got == "" {
		t.Fatal("goVersion must fall back to the runtime version")
	}
	if !strings.HasPrefix(got, "go") && !strings.HasPrefix(got, "devel") {
		t.Errorf("goVersion() = %q, want a toolchain version", got)
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	lgr := GetNoopLogger()
	ctx := WithLogger(context.Background(), lgr)

	if got := FromContext(ctx); got != lgr {
		t.Error("FromContext should return the logger stored by WithLogger")
	}
}

func TestWithLoggerSameLoggerReturnsSameContext(t *testing.T) {
	lgr := GetNoopLogger()
	ctx := WithLogger(context.Background(), lgr)

	if again := WithLogger(ctx, lgr); again != ctx {
		t.Error("re-attaching the same logger should not allocate a new context")
	}
}

func TestFromContextFallbacks(t *testing.T) {
	orig := globalLogrLogger
	defer func() { globalLogrLogger = orig }()

	globalLogrLogger = nil
	if got := FromContext(context.Background()); got != &defaultNoopLogger {
		t.Error("FromContext without a global should return the noop logger")
	}

	stub := logr.Discard()
	globalLogrLogger = &stub
	if got := FromContext(context.Background()); got != &stub {
		t.Error("FromContext should fall back to the global logger")
	}
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	base := GetNoopLogger()
	derived := WithValues(base, "key", "value")
	if derived == nil {
		t.Fatal("WithValues returned nil")
	}
	if derived == base {
		t.Error("WithValues should return a derived logger, not the receiver")
	}
}

func TestSyncDoesNotPanic(t *testing.T) {
	Get(0)
	Sync()

	// Sync with no initialized logger is a no-op.
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()
	Sync()
}

func TestIsIgnorableSyncError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"einval", syscall.EINVAL, true},
		{"enotty", syscall.ENOTTY, true},
		{"eio", syscall.EIO, true},
		{"ebadf", syscall.EBADF, true},
		{"windows handle", errors.New("sync /dev/stderr: The handle is invalid."), true},
		{"real failure", errors.New("disk full"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isIgnorableSyncError(tt.err); got != tt.want {
				t.Errorf("isIgnorableSyncError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetGlobalLoggerNeverNil(t *testing.T) {
	if GetGlobalLogger() == nil {
		t.Error("GetGlobalLogger returned nil")
	}
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	if GetGlobalLogger() != &defaultNoopLogger {
		t.Error("GetGlobalLogger should fall back to the noop logger")
	}
}
