package entry

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"diary/internal/domain/entry"
	"diary/internal/server/api/http/middleware/auth"
)

type Handler struct {
	service    entry.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service entry.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entries, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, mapError(err, "listing")
	}

	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{
			ID:               e.ID,
			EncryptedTitle:   e.EncryptedTitle,
			EncryptedContent: e.EncryptedContent,
			DateCreated:      e.DateCreated.UTC().Format(timeFormat),
			DateModified:     e.DateModified.UTC().Format(timeFormat),
		}
	}

	return &listOutput{Body: items}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*mutateOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	e, err := h.service.Create(ctx, userID, input.Body.EncryptedTitle, input.Body.EncryptedContent)
	if err != nil {
		return nil, mapError(err, "creating")
	}

	return &mutateOutput{
		Body: mutateResponse{
			Message:      "Entry created successfully.",
			ID:           e.ID,
			DateModified: e.DateModified.UTC().Format(timeFormat),
		},
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*mutateOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	e, err := h.service.Update(ctx, input.ID, userID, input.Body.EncryptedTitle, input.Body.EncryptedContent)
	if err != nil {
		return nil, mapError(err, "updating")
	}

	return &mutateOutput{
		Body: mutateResponse{
			Message:      "Entry updated successfully.",
			ID:           e.ID,
			DateModified: e.DateModified.UTC().Format(timeFormat),
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, input.ID, userID); err != nil {
		return nil, mapError(err, "deleting")
	}

	return &deleteOutput{
		Body: deleteResponse{Message: "Entry deleted successfully."},
	}, nil
}

// mapError translates domain failures to HTTP statuses. Store failures stay
// generic apart from the operation name; the detail is already logged at the
// service layer.
func mapError(err error, action string) error {
	switch {
	case errors.Is(err, entry.ErrInvalidData):
		return huma.Error400BadRequest("Missing encrypted title or content")
	case errors.Is(err, entry.ErrForbidden):
		return huma.Error403Forbidden("Unauthorized access")
	case errors.Is(err, entry.ErrNotFound):
		return huma.Error404NotFound("Entry not found")
	default:
		return huma.Error500InternalServerError("Database error while " + action + " entry.")
	}
}
