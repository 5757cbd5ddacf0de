package errors

import (
	stderrors "errors"
	"strconv"

	"github.com/fulmenhq/gofulmen/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maxrange/maxrange/internal/core/counter"
	"github.com/maxrange/maxrange/internal/metrics"
	"github.com/maxrange/maxrange/internal/observability"
)

// Error codes used across the CLI.
const (
	CodeInvalidBounds  = "INVALID_BOUNDS"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeDataProcessing = "DATA_PROCESSING_ERROR"
	CodeInternal       = "INTERNAL_ERROR"
	CodeVerifyFailed   = "VERIFY_FAILED"
)

// Error creation helpers

func NewInvalidInputError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeInvalidInput, message)
}

func NewConfigInvalidError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeConfigInvalid, message)
}

func NewDataProcessingError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(CodeDataProcessing, message)
}

func NewVerifyFailedError(message string) *errors.ErrorEnvelope {
	env := errors.NewErrorEnvelope(CodeVerifyFailed, message)
	env, _ = env.WithSeverity(errors.SeverityHigh)
	return env
}

// NewInvalidBoundsError reports a query whose left bound exceeds its right bound.
// Envelope context only holds string, float64, int and bool values, so the
// bounds are stored as decimal strings to keep every int64 exact.
func NewInvalidBoundsError(query string, left, right int64) *errors.ErrorEnvelope {
	env := errors.NewErrorEnvelope(CodeInvalidBounds, "left bound exceeds right bound")
	env = env.WithCorrelationID(newCorrelationID())
	env = withContext(env, map[string]interface{}{
		"query": query,
		"left":  strconv.FormatInt(left, 10),
		"right": strconv.FormatInt(right, 10),
	})
	env, _ = env.WithSeverity(errors.SeverityMedium)
	return env
}

// Wrap functions for existing errors

func WrapInvalidInput(err error, message string) *errors.ErrorEnvelope {
	envelope := errors.NewErrorEnvelope(CodeInvalidInput, message)
	envelope = envelope.WithCorrelationID(newCorrelationID())
	return withWrappedError(envelope, err)
}

func WrapConfigInvalid(err error, message string) *errors.ErrorEnvelope {
	envelope := errors.NewErrorEnvelope(CodeConfigInvalid, message)
	envelope = envelope.WithCorrelationID(newCorrelationID())
	return withWrappedError(envelope, err)
}

func WrapDataProcessing(err error, message string) *errors.ErrorEnvelope {
	envelope := errors.NewErrorEnvelope(CodeDataProcessing, message)
	envelope = envelope.WithCorrelationID(newCorrelationID())
	return withWrappedError(envelope, err)
}

// FromCountError maps a counter error into an envelope. Bounds violations keep
// their own code; everything else is treated as internal.
func FromCountError(query string, left, right int64, err error) *errors.ErrorEnvelope {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, counter.ErrInvalidBounds) {
		return NewInvalidBoundsError(query, left, right)
	}
	return EnsureEnvelope(err)
}

// EnsureEnvelope normalizes any error into a gofulmen ErrorEnvelope.
func EnsureEnvelope(err error) *errors.ErrorEnvelope {
	if err == nil {
		env := errors.NewErrorEnvelope(CodeInternal, "unexpected nil error")
		env, _ = env.WithSeverity(errors.SeverityCritical)
		return env
	}

	var envelope *errors.ErrorEnvelope
	if stderrors.As(err, &envelope) && envelope != nil {
		return envelope
	}

	env := errors.NewErrorEnvelope(CodeInternal, "unexpected error")
	env = withWrappedError(env, err)
	env, _ = env.WithSeverity(errors.SeverityHigh)
	return env
}

// EnsureCorrelationID attaches a correlation ID when the envelope has none.
func EnsureCorrelationID(envelope *errors.ErrorEnvelope) *errors.ErrorEnvelope {
	if envelope == nil {
		return nil
	}
	if envelope.CorrelationID != "" {
		return envelope
	}
	return envelope.WithCorrelationID(newCorrelationID())
}

// Report logs the envelope on the CLI logger and records an error metric. It
// returns the envelope with a correlation ID attached so the caller can hand
// the same ID back to the user.
func Report(envelope *errors.ErrorEnvelope) *errors.ErrorEnvelope {
	if envelope == nil {
		return nil
	}
	envelope = EnsureCorrelationID(envelope)

	metrics.RecordError(envelope.Code)

	if observability.CLILogger == nil {
		return envelope
	}

	fields := []zap.Field{
		zap.String("error_code", envelope.Code),
	}
	if envelope.Severity != "" {
		fields = append(fields, zap.String("severity", string(envelope.Severity)))
	}
	for key, value := range envelope.Context {
		fields = append(fields, zap.Any(key, value))
	}
	if envelope.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", envelope.CorrelationID))
	}

	switch envelope.Severity {
	case errors.SeverityCritical, errors.SeverityHigh:
		observability.CLILogger.Error(envelope.Message, fields...)
	case errors.SeverityMedium:
		observability.CLILogger.Warn(envelope.Message, fields...)
	default:
		observability.CLILogger.Info(envelope.Message, fields...)
	}
	return envelope
}

func newCorrelationID() string {
	return uuid.New().String()
}

// Cause returns the error an envelope was wrapped around, or nil. Envelopes do
// not unwrap, so errors.Is on an envelope never reaches its cause.
func Cause(envelope *errors.ErrorEnvelope) error {
	if envelope == nil || envelope.Original == nil {
		return nil
	}
	if err, ok := envelope.Original.(error); ok {
		return err
	}
	return nil
}

func withWrappedError(envelope *errors.ErrorEnvelope, err error) *errors.ErrorEnvelope {
	if envelope == nil || err == nil {
		return envelope
	}

	envelope = withContext(envelope, map[string]interface{}{
		"wrapped_error": err.Error(),
	})
	envelope.Original = err
	return envelope
}

// withContext attaches context, keeping the envelope unchanged when the
// values are rejected.
func withContext(envelope *errors.ErrorEnvelope, values map[string]interface{}) *errors.ErrorEnvelope {
	updated, err := envelope.WithContext(values)
	if err != nil || updated == nil {
		if observability.CLILogger != nil {
			observability.CLILogger.Debug("Dropped error context", zap.String("error_code", envelope.Code), zap.Error(err))
		}
		return envelope
	}
	return updated
}
