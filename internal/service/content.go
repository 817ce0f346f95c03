package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/events"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// notFoundOr turns an empty single-row result into a NotFound for resource.
func notFoundOr(err error, resource string) error {
	if apperrors.IsNoRows(err) {
		return apperrors.NewNotFound(resource)
	}
	return err
}

func publishContentChanged(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, kind events.ContentKind, id string, action events.Action) {
	if dispatcher == nil {
		return
	}
	event := events.New(events.EventContentChanged, auth.ActorID(ctx), events.ContentChangedPayload{
		Kind:     kind,
		EntityID: id,
		Action:   action,
	})
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish content change", zap.String("kind", string(kind)), zap.Error(err))
	}
}

type field struct {
	name    string
	present bool
}

func missingFields(fields ...field) []string {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
