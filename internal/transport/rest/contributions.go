package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/agpb-backend/internal/domain"
	"github.com/heartmarshall/agpb-backend/internal/service/contribution"
)

type contributionService interface {
	List(ctx context.Context, input contribution.ListInput) ([]domain.Contribution, int, error)
	GetByID(ctx context.Context, id int64) (domain.Contribution, error)
}

// ContributionHandler serves the read-only contribution ledger.
type ContributionHandler struct {
	svc contributionService
	log *slog.Logger
}

// NewContributionHandler creates a ContributionHandler.
func NewContributionHandler(svc contributionService, logger *slog.Logger) *ContributionHandler {
	return &ContributionHandler{svc: svc, log: logger.With("handler", "contribution")}
}

type contributionResponse struct {
	ID       int64     `json:"id"`
	WDItem   string    `json:"wd_item"`
	Username string    `json:"username"`
	LangCode string    `json:"lang_code"`
	EditType string    `json:"edit_type"`
	Data     string    `json:"data"`
	Date     time.Time `json:"date"`
}

type contributionListResponse struct {
	Contributions []contributionResponse `json:"contributions"`
	Total         int                    `json:"total"`
}

func toContributionResponse(c domain.Contribution) contributionResponse {
	return contributionResponse{
		ID:       c.ID,
		WDItem:   c.WDItem,
		Username: c.Username,
		LangCode: c.LangCode,
		EditType: c.EditType.String(),
		Data:     c.Data,
		Date:     c.Date,
	}
}

// List handles GET /contributions/.
func (h *ContributionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var errs []domain.FieldError
	limit := queryInt(q.Get("limit"), "limit", &errs)
	offset := queryInt(q.Get("offset"), "offset", &errs)
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	items, total, err := h.svc.List(r.Context(), contribution.ListInput{
		Username: q.Get("username"),
		LangCode: q.Get("lang_code"),
		EditType: q.Get("edit_type"),
		Mine:     q.Get("mine") == "true" || q.Get("mine") == "1",
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := contributionListResponse{Contributions: make([]contributionResponse, len(items)), Total: total}
	for i, c := range items {
		resp.Contributions[i] = toContributionResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /contributions/{id}.
func (h *ContributionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("id", "must be an integer"))
		return
	}

	c, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContributionResponse(c))
}

func queryInt(raw, field string, errs *[]domain.FieldError) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, domain.FieldError{Field: field, Message: "must be an integer"})
		return 0
	}
	return n
}
