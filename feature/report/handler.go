package report

import (
	"errors"

	"locize-sync/core/logger"
	"locize-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MissingResponse is the body of GET /missing.
type MissingResponse struct {
	Summary reconcile.PlanSummary      `json:"summary"`
	Missing map[string][]reconcile.Key `json:"missing"`
}

// Handler handles HTTP requests for translation reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/languages", h.HandleLanguages)
	app.Get("/missing", h.HandleMissing)
	app.Post("/missing/refresh", h.HandleRefresh)
}

// HandleLanguages lists the project's languages.
// @Summary List Languages
// @Description Returns the store's languages in store order.
// @Tags report
// @Produce json
// @Success 200 {array} reconcile.Language
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /languages [get]
func (h *Handler) HandleLanguages(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	langs, err := h.service.Languages(c.UserContext())
	if err != nil {
		l.Error("Failed to load languages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(langs)
}

// HandleMissing reports the keys without a translation.
// @Summary Missing Translations
// @Description Scans the source tree and lists, per language, the keys without a usable translation.
// @Tags report
// @Produce json
// @Param language query string false "Restrict the report to one language code"
// @Success 200 {object} MissingResponse
// @Failure 404 {object} map[string]string "Unknown language"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /missing [get]
func (h *Handler) HandleMissing(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	language := c.Query("language")

	plan, err := h.service.Missing(c.UserContext(), language)
	if err != nil {
		if errors.Is(err, ErrUnknownLanguage) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to build missing report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	missing := make(map[string][]reconcile.Key, len(plan.Languages))
	for _, lang := range plan.Languages {
		missing[lang.Code] = plan.ForLanguage(lang.Code)
	}

	l.Info("Missing report built", zap.String("language", language), zap.Int("missing", plan.Summary.Missing))
	return c.JSON(MissingResponse{Summary: plan.Summary, Missing: missing})
}

// HandleRefresh drops the cached store snapshot.
// @Summary Refresh Snapshot
// @Description Invalidates the cached languages and resources; the next report reloads them from the store.
// @Tags report
// @Produce json
// @Success 200 {object} map[string]string
// @Router /missing/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	h.service.Refresh()
	return c.JSON(fiber.Map{"status": "refreshed"})
}
