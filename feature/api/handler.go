package api

import (
	"errors"
	"io/fs"

	"jobwatch/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for postings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the posting routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/postings", h.HandleListPostings)
	app.Get("/postings/:key", h.HandleGetPosting)
	app.Get("/report", h.HandleGetReport)
}

// HandleListPostings returns the full active dataset.
func (h *Handler) HandleListPostings(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.service.logger, c)

	records, err := h.service.ListPostings()
	if err != nil {
		l.Error("Failed to load dataset", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"count":    len(records),
		"postings": records,
	})
}

// HandleGetPosting returns one posting by identity key.
func (h *Handler) HandleGetPosting(c *fiber.Ctx) error {
	key := c.Params("key")
	l := logger.WithRequestID(h.service.logger, c)

	rec, ok, err := h.service.GetPosting(key)
	if err != nil {
		l.Error("Failed to load dataset", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "posting not found",
		})
	}

	return c.JSON(rec)
}

// HandleGetReport returns the latest run report.
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.service.logger, c)

	rep, err := h.service.LatestReport()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no report yet",
			})
		}
		l.Error("Failed to load report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(rep)
}
