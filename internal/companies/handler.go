package companies

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/biztime/biztime/internal/platform/httpx"
)

// Handler manages company endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers company routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{code}", h.show)
	r.Put("/{code}", h.update)
	r.Delete("/{code}", h.delete)
	r.Post("/{code}/industries", h.associate)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list companies", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"companies": summaries})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	detail, err := h.service.Get(r.Context(), code)
	if err != nil {
		h.logger.Error("get company", slog.Any("error", err), slog.String("code", code))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company": detail})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CompanyInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "name is required")
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("create company", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"company": created})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var input CompanyInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "name is required")
		return
	}

	updated, err := h.service.Update(r.Context(), code, input)
	if err != nil {
		h.logger.Error("update company", slog.Any("error", err), slog.String("code", code))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company": updated})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.service.Delete(r.Context(), code); err != nil {
		h.logger.Error("delete company", slog.Any("error", err), slog.String("code", code))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) associate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var input AssociateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "industry_code is required")
		return
	}

	if err := h.service.Associate(r.Context(), code, input.IndustryCode); err != nil {
		h.logger.Error("associate industry", slog.Any("error", err),
			slog.String("code", code), slog.String("industry_code", input.IndustryCode))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"company":  map[string]string{"code": code},
		"industry": map[string]string{"code": input.IndustryCode},
	})
}
