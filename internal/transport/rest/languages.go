package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/agpb-backend/internal/domain"
)

type languageTable interface {
	Lookup(code string) (domain.Language, error)
	All() []domain.Language
}

// LanguageHandler serves the static language table.
type LanguageHandler struct {
	table languageTable
	log   *slog.Logger
}

// NewLanguageHandler creates a LanguageHandler.
func NewLanguageHandler(table languageTable, logger *slog.Logger) *LanguageHandler {
	return &LanguageHandler{table: table, log: logger.With("handler", "language")}
}

// List handles GET /languages/.
func (h *LanguageHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.table.All())
}

// Get handles GET /languages/{code}.
func (h *LanguageHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.table.Lookup(r.PathValue("code"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, l)
}
