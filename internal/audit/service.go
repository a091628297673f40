package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/vendora/vendora/internal/platform/ctxutil"
	"github.com/vendora/vendora/pkg/pointer"
)

// Recorder is the write-side facade handed to the resource services.
//
// Recording is best-effort: entries are written after the mutation commits,
// and a failed audit write is logged but never fails the mutation the admin
// asked for.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record appends one audit entry for a committed mutation. The acting
// member is taken from the request context unless the caller set one.
func (recorder *Recorder) Record(context context.Context, e *Entry) {
	recorder.stampActor(context, e)
	if err := recorder.repo.CreateEntry(context, e); err != nil {
		recorder.logger.Error("audit_record_failed",
			slog.String("entity_type", e.EntityType),
			slog.Int64("entity_id", e.EntityID),
			slog.Any("error", err),
		)
	}
}

func (recorder *Recorder) stampActor(context context.Context, e *Entry) {
	if e.ActorID != nil {
		return
	}
	if claims := ctxutil.GetAuthUser(context); claims != nil {
		e.ActorID = pointer.To(claims.UserID)
	}
}

// Diff marshals old/new snapshots into the Changes payload.
// Either side may be nil (create has no old state, delete no new state).
func Diff(oldState, newState any) json.RawMessage {
	payload := map[string]any{}
	if oldState != nil {
		payload["old"] = oldState
	}
	if newState != nil {
		payload["new"] = newState
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return raw
}

// Service exposes the read side of the audit log to the HTTP layer.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListEntries(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Entry, int, error) {
	return service.repo.ListEntries(context, tenantID, f, limit, offset)
}
