package verifier

import (
	"context"
	"errors"
	"log/slog"

	dErrors "authgw/pkg/domain-errors"
)

// Remote verifies credentials against the real legacy identity service.
// Every fault leaving it is classified as an authentication failure with a
// distinguishing description; nothing escapes unclassified.
type Remote struct {
	logger *slog.Logger
	client BackendClient
}

// NewRemote creates the real verifier over the given backend client.
func NewRemote(logger *slog.Logger, client BackendClient) *Remote {
	return &Remote{logger: logger, client: client}
}

func (r *Remote) Verify(ctx context.Context, username, password string) (Result, error) {
	r.logger.InfoContext(ctx, "starting backend verification", "username", username)

	res, err := r.client.Authenticate(ctx, username, password)
	if err == nil {
		r.logger.InfoContext(ctx, "backend verification answered",
			"username", username,
			"status_code", res.StatusCode,
		)
		return res, nil
	}

	var fault *BackendFault
	var terr *TransportError
	switch {
	case errors.As(err, &fault):
		r.logger.ErrorContext(ctx, "backend reported an authentication fault", "error", err)
		return Result{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "authentication rejected by backend")

	case errors.As(err, &terr):
		r.logger.ErrorContext(ctx, "backend transport failure", "error", err)
		if terr.Unauthorized() {
			return Result{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid backend credentials")
		}
		return Result{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "backend unavailable")

	default:
		r.logger.ErrorContext(ctx, "unexpected backend failure", "error", err)
		return Result{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "backend communication failure")
	}
}
