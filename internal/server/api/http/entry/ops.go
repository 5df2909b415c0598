package entry

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-list",
		Method:      http.MethodGet,
		Path:        "/api/entries",
		Summary:     "List the caller's diary entries",
		Description: "Returns all entries owned by the authenticated user, most recently modified first.",
		Tags:        []string{"entries"},
		Security:    []map[string][]string{{"session": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "entries-create",
		Method:        http.MethodPost,
		Path:          "/api/entries",
		Summary:       "Create a diary entry",
		Description:   "Stores a new entry. Title and content are opaque ciphertext; the server never decrypts them.",
		Tags:          []string{"entries"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"session": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-update",
		Method:      http.MethodPut,
		Path:        "/api/entries/{id}",
		Summary:     "Update a diary entry",
		Description: "Replaces title and content wholesale and refreshes the modification time.",
		Tags:        []string{"entries"},
		Security:    []map[string][]string{{"session": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-delete",
		Method:      http.MethodDelete,
		Path:        "/api/entries/{id}",
		Summary:     "Delete a diary entry",
		Tags:        []string{"entries"},
		Security:    []map[string][]string{{"session": {}}},
		Middlewares: h.middleware,
	}
}
