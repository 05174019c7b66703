package verifier

import (
	"context"
	"log/slog"
	"strings"

	"authgw/internal/media"
)

// identity is one canned entry of the simulated backend.
type identity struct {
	firstName string
	lastName  string
	age       int
	photoRef  string
	video     string
}

// identities maps normalized usernames to canned verification data. Built
// once, read-only afterwards; the media reference is resolved per call so an
// encoder fault can be observed and degraded.
var identities = map[string]identity{
	"juan.perez":       {"Juan", "Pérez", 25, "images/avatar_1.png", "https://youtube.com/shorts/OplrL_DT7bM?si=RqfilkcZrkCLsV9e"},
	"maria.gonzalez":   {"María", "González", 30, "images/avatar_2.png", "https://www.youtube.com/shorts/4CYkhXIDxeQ?feature=share"},
	"carlos.rodriguez": {"Carlos", "Rodríguez", 28, "images/avatar_3.png", "https://youtube.com/shorts/3dx1dBzM7ZY?si=fRN0Cl2b9SEU5BQx"},
	"ana.martinez":     {"Ana", "Martínez", 35, "images/avatar_4.png", "https://youtube.com/shorts/MiWzebtC_Zo?si=R22s2fk9S2q-2AIs"},
	"luis.fernandez":   {"Luis", "Fernández", 42, "images/avatar_5.png", "9bZkp7q19f0"},
	"sofia.lopez":      {"Sofía", "López", 27, "images/avatar_2.png", "https://youtube.com/shorts/4kj3g9Y-spg?si=kBdfSCpieflO3CVn"},
	"diego.morales":    {"Diego", "Morales", 33, "images/avatar_3.png", "https://youtube.com/shorts/SvwcGmYNuoE?si=AaWrfc-gTBQPgbvV"},
}

var (
	notFoundResult = Result{
		StatusCode: 401,
		FirstName:  "Usuario",
		LastName:   "No Encontrado",
		Age:        0,
		Video:      "Usuario no encontrado en el sistema.",
	}

	systemErrorResult = Result{
		StatusCode: 500,
		FirstName:  "Error",
		LastName:   "Sistema",
		Age:        0,
		Video:      "SYSTEM ERROR",
	}
)

// Mock is the simulated verifier. It accepts the password without checking
// it and never returns a Go error: an unknown user yields the 401 result and
// an internal failure degrades to the 500 result.
type Mock struct {
	logger  *slog.Logger
	encoder media.Encoder
}

// NewMock creates the simulated verifier.
func NewMock(logger *slog.Logger, encoder media.Encoder) *Mock {
	return &Mock{logger: logger, encoder: encoder}
}

// Verify looks the username up in the fixed table, case-insensitively.
func (m *Mock) Verify(ctx context.Context, username, _ string) (Result, error) {
	m.logger.InfoContext(ctx, "using simulated backend verification", "username", username)

	id, ok := identities[strings.ToLower(username)]
	if !ok {
		return notFoundResult, nil
	}

	photo, err := m.encoder.DataURI(id.photoRef)
	if err != nil {
		m.logger.ErrorContext(ctx, "simulated verification failed to assemble response",
			"username", username,
			"error", err,
		)
		return systemErrorResult, nil
	}

	return Result{
		StatusCode:   200,
		FirstName:    id.firstName,
		LastName:     id.lastName,
		Age:          id.age,
		ProfilePhoto: photo,
		Video:        id.video,
	}, nil
}
