package grpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwlog "github.com/msto63/chronik/foundation/core/log"
	"github.com/msto63/chronik/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		code mdwerror.Code
		want codes.Code
	}{
		{mdwerror.CodeInvalidZonedDateTime, codes.FailedPrecondition},
		{mdwerror.CodeTimexOutOfRange, codes.OutOfRange},
		{mdwerror.CodeTimexInvalidFormat, codes.InvalidArgument},
		{mdwerror.CodeUnknownTimeZone, codes.NotFound},
		{mdwerror.CodeDuplicateEntry, codes.AlreadyExists},
		{mdwerror.CodeDatabaseError, codes.Internal},
		{mdwerror.CodeUnknown, codes.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := CodeFor(tt.code); got != tt.want {
				t.Errorf("CodeFor(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"plain", errors.New("boom"), codes.Unknown},
		{"deadline", fmt.Errorf("resolve: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"status passthrough", status.Error(codes.Unavailable, "down"), codes.Unavailable},
		{"coded", mdwerror.New("gap").WithCode(mdwerror.CodeInvalidZonedDateTime), codes.FailedPrecondition},
		{"wrapped coded", fmt.Errorf("day: %w", mdwerror.New("x").WithCode(mdwerror.CodeTimexOutOfRange)), codes.OutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToStatus(tt.err).Code(); got != tt.want {
				t.Errorf("ToStatus().Code() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromStatusRestoresCode(t *testing.T) {
	original := mdwerror.New("local time falls into a gap").
		WithCode(mdwerror.CodeInvalidZonedDateTime).
		WithOperation("timex.CreateZoned")

	wire := ToStatus(original).Err()
	restored := FromStatus(wire)

	if !mdwerror.HasCode(restored, mdwerror.CodeInvalidZonedDateTime) {
		t.Errorf("restored code = %v", mdwerror.GetCode(restored))
	}
	if restored.Error() != original.Error() {
		t.Errorf("restored message = %q, want %q", restored.Error(), original.Error())
	}

	plain := FromStatus(status.Error(codes.Unavailable, "connection refused"))
	if mdwerror.GetCode(plain) != mdwerror.CodeServiceUnavailable {
		t.Errorf("Unavailable maps to %v", mdwerror.GetCode(plain))
	}

	if FromStatus(nil) != nil {
		t.Error("FromStatus(nil) should be nil")
	}
	other := errors.New("not a status")
	if FromStatus(other) != other {
		t.Error("non-status errors should pass through")
	}
}

func TestErrorStatusInterceptor(t *testing.T) {
	interceptor := ErrorStatusInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/chronik.v1.Calendar/ResolveDay"}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, mdwerror.New("unknown zone").WithCode(mdwerror.CodeUnknownTimeZone)
	})
	if status.Code(err) != codes.NotFound {
		t.Errorf("status code = %v, want NotFound", status.Code(err))
	}

	resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Errorf("success path = %v, %v", resp, err)
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Wrap("grpc", mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelDebug,
		Format: mdwlog.FormatLogfmt,
		Output: &buf,
	}))
	interceptor := LoggingInterceptor(logger)
	info := &grpc.UnaryServerInfo{FullMethod: "/chronik.v1.Calendar/AddPeriod"}
	ctx := WithRequestID(context.Background(), "req-42")

	_, _ = interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, nil
	})
	_, _ = interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, mdwerror.New("gap").WithCode(mdwerror.CodeInvalidZonedDateTime)
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "req-42") || !strings.Contains(lines[0], "success=true") {
		t.Errorf("success line = %s", lines[0])
	}
	if !strings.Contains(lines[1], "TIMEX_INVALID_ZONED_DATE_TIME") || !strings.Contains(lines[1], "FailedPrecondition") {
		t.Errorf("failure line = %s", lines[1])
	}
}

func TestRequestIDInterceptor(t *testing.T) {
	interceptor := RequestIDInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/x/y"}

	var seen string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "abc"))
	_, _ = interceptor(ctx, nil, info, handler)
	if seen != "abc" {
		t.Errorf("request id = %q, want abc", seen)
	}

	_, _ = interceptor(context.Background(), nil, info, handler)
	if len(seen) != 36 {
		t.Errorf("generated request id = %q, want a UUID", seen)
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Wrap("grpc", mdwlog.NewWithConfig(mdwlog.Config{Output: &buf, Format: mdwlog.FormatJSON}))

	_, err := RecoveryInterceptor(logger)(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/y"},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			panic("broken")
		})
	if status.Code(err) != codes.Internal {
		t.Errorf("status code = %v, want Internal", status.Code(err))
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Errorf("panic not logged: %s", buf.String())
	}
}
