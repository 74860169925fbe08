package handler

import (
	"navprep/internal/domain"
	"navprep/internal/dto"
	"navprep/internal/logger"
	"navprep/internal/service"
	"navprep/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerationHandler handles content-generation HTTP requests
type GenerationHandler struct {
	queue     *service.QueueService
	pipeline  *service.PipelineService
	cache     domain.Cache
	validator *validation.Validator
}

// NewGenerationHandler creates a new GenerationHandler instance
func NewGenerationHandler(queue *service.QueueService, pipeline *service.PipelineService, cache domain.Cache, validator *validation.Validator) *GenerationHandler {
	return &GenerationHandler{
		queue:     queue,
		pipeline:  pipeline,
		cache:     cache,
		validator: validator,
	}
}

// Generate handles POST /api/generate. Validation fails fast before any
// network call; the queue serializes the actual generation work.
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body is not valid JSON")
	}

	if err := h.validator.MaterialTooLarge(req.Material); err != nil {
		return err
	}
	if errs := h.validator.ValidateGenerateRequest(req.Title, req.Material, req.Type, req.Count); len(errs) > 0 {
		return errs
	}

	content := domain.RawContent{
		Title:       req.Title,
		Description: req.Description,
		Material:    req.Material,
		Type:        domain.ContentType(req.Type),
	}

	result, err := h.queue.Enqueue(c.Context(), content, req.Count)
	if err != nil {
		logger.Get().Error("Generation request failed",
			zap.Error(err),
			zap.String("type", req.Type),
			zap.String("title", req.Title),
		)
		return err
	}

	return c.JSON(dto.GenerateResponse{
		Success: true,
		Content: result.Content,
		Type:    string(result.Type),
	})
}

// FormatNavadmin handles POST /api/navadmin/format
func (h *GenerationHandler) FormatNavadmin(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body is not valid JSON")
	}
	if err := h.validator.MaterialTooLarge(req.Material); err != nil {
		return err
	}
	if errs := h.validator.ValidateTextRequest(req.Material); len(errs) > 0 {
		return errs
	}

	content, err := h.pipeline.FormatNavadmin(c.Context(), req.Material)
	if err != nil {
		logger.Get().Error("NAVADMIN formatting failed", zap.Error(err))
		return err
	}

	return c.JSON(dto.TextResponse{Success: true, Content: content})
}

// Summarize handles POST /api/summarize
func (h *GenerationHandler) Summarize(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body is not valid JSON")
	}
	if err := h.validator.MaterialTooLarge(req.Material); err != nil {
		return err
	}
	if errs := h.validator.ValidateTextRequest(req.Material); len(errs) > 0 {
		return errs
	}

	content, err := h.pipeline.Summarize(c.Context(), req.Material)
	if err != nil {
		logger.Get().Error("Summarization failed", zap.Error(err))
		return err
	}

	return c.JSON(dto.TextResponse{Success: true, Content: content})
}

// Health handles GET /api/health
func (h *GenerationHandler) Health(c *fiber.Ctx) error {
	cacheStatus := "ok"
	if err := h.cache.Ping(c.Context()); err != nil {
		cacheStatus = "unavailable"
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Cache: cacheStatus})
}
