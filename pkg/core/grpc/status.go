package grpc

import (
	"context"
	"errors"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain names the ErrorInfo domain attached to chronik status errors
const ErrorDomain = "chronik"

// CodeFor maps an error code to the gRPC status code
func CodeFor(code mdwerror.Code) codes.Code {
	switch code {
	case mdwerror.CodeNotFound, mdwerror.CodeUnknownTimeZone:
		return codes.NotFound
	case mdwerror.CodeDuplicateEntry:
		return codes.AlreadyExists
	case mdwerror.CodeInvalidZonedDateTime:
		return codes.FailedPrecondition
	case mdwerror.CodeTimexOutOfRange, mdwerror.CodeValueOutOfRange:
		return codes.OutOfRange
	case mdwerror.CodeInvalidInput, mdwerror.CodeValidationFailed, mdwerror.CodeInvalidFormat,
		mdwerror.CodeTimexInvalidFormat:
		return codes.InvalidArgument
	case mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case mdwerror.CodeServiceUnavailable, mdwerror.CodeNetworkError:
		return codes.Unavailable
	case mdwerror.CodeConfigError, mdwerror.CodeMissingConfig, mdwerror.CodeInvalidConfig:
		return codes.FailedPrecondition
	case mdwerror.CodeInternal, mdwerror.CodeDatabaseError:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// ToStatus converts err into a gRPC status. The error code of an *Error
// travels as an ErrorInfo detail so FromStatus can restore it.
func ToStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if st, ok := status.FromError(err); ok {
		return st
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	}

	e, ok := mdwerror.As(err)
	if !ok {
		return status.New(codes.Unknown, err.Error())
	}

	st := status.New(CodeFor(e.Code()), err.Error())
	info := &errdetails.ErrorInfo{
		Reason:   e.Code().String(),
		Domain:   ErrorDomain,
		Metadata: map[string]string{"severity": e.Severity().String()},
	}
	if e.Operation() != "" {
		info.Metadata["operation"] = e.Operation()
	}
	if detailed, derr := st.WithDetails(info); derr == nil {
		return detailed
	}
	return st
}

// FromStatus turns a status error received by a client back into an *Error
// carrying the original code. Other errors are returned unchanged.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return err
	}

	code := mdwerror.CodeUnknown
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			code = mdwerror.Code(info.GetReason())
			break
		}
	}
	if code == mdwerror.CodeUnknown {
		switch st.Code() {
		case codes.Unavailable:
			code = mdwerror.CodeServiceUnavailable
		case codes.DeadlineExceeded:
			code = mdwerror.CodeTimeout
		case codes.NotFound:
			code = mdwerror.CodeNotFound
		case codes.InvalidArgument:
			code = mdwerror.CodeInvalidInput
		}
	}
	return mdwerror.New(st.Message()).WithCode(code).WithDetail("grpc_code", st.Code().String())
}
