package handlers

import (
	"errors"

	"github.com/adforge/backend/internal/http/dto"
	"github.com/adforge/backend/internal/metaads"
	"github.com/adforge/backend/internal/middleware"
	"github.com/adforge/backend/internal/services"
	"github.com/adforge/backend/internal/sessions"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	pipeline *services.PipelineService
	settings *services.SettingsService
	meta     *metaads.Client
	store    *sessions.Store
	log      *zap.Logger
}

func NewCampaignHandler(
	pipeline *services.PipelineService,
	settings *services.SettingsService,
	meta *metaads.Client,
	store *sessions.Store,
	log *zap.Logger,
) *CampaignHandler {
	return &CampaignHandler{
		pipeline: pipeline,
		settings: settings,
		meta:     meta,
		store:    store,
		log:      log,
	}
}

// LaunchCampaign runs the full creation pipeline for a reviewed run. The
// request may carry edited content; otherwise the stored copy is used. Any
// failure leaves the run in failed with whatever ids were already assigned.
func (h *CampaignHandler) LaunchCampaign(c *fiber.Ctx) error {
	var req dto.LaunchCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.CampaignName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "campaign_name is required"})
	}
	if req.DailyBudget <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "daily_budget must be positive"})
	}

	runID, err := uuid.Parse(req.RunID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid run id"})
	}

	sessionID := middleware.GetSessionID(c)
	run, err := h.store.GetRun(c.Context(), runID)
	if err != nil || run.SessionID != sessionID {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "run not found"})
	}

	effective := h.settings.Effective(c.Context(), sessionID)
	token := effective.MetaAccessToken
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "meta access token is required, set it in session settings"})
	}

	accountID := req.AdAccountID
	if accountID == "" {
		id, ok := h.meta.GetAdAccountID(c.Context(), token)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "could not find an ad account, check your access token"})
		}
		accountID = id
	}

	pageID := req.PageID
	if pageID == "" {
		pageID = effective.PageID
	}
	if pageID == "" {
		if id, ok := h.meta.GetPageID(c.Context(), token); ok {
			pageID = id
		}
	}

	in := services.LaunchInput{
		Token:        token,
		AdAccountID:  accountID,
		PageID:       pageID,
		CampaignName: req.CampaignName,
		Objective:    req.Objective,
		DailyBudget:  req.DailyBudget,
		WebsiteURL:   req.WebsiteURL,
		CallToAction: req.CallToAction,
		Targeting:    req.Targeting,
	}
	if in.Objective == "" {
		in.Objective = run.Objective
	}
	if in.CallToAction == "" {
		in.CallToAction = run.CallToAction
	}
	if req.Content != nil {
		in.Content = *req.Content
	} else {
		stored, err := h.store.GetContent(c.Context(), sessionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "no generated content for this session, generate first"})
		}
		in.Content = stored
	}

	if err := h.pipeline.Launch(c.Context(), run, in); err != nil {
		return h.launchError(c, run, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: run})
}

// launchError maps the pipeline's typed failures onto HTTP statuses. The run
// snapshot rides along so clients see how far the pipeline got.
func (h *CampaignHandler) launchError(c *fiber.Ctx, run any, err error) error {
	var (
		authErr      *metaads.AuthError
		validErr     *metaads.ValidationError
		platformErr  *metaads.PlatformError
		transportErr *metaads.TransportError
	)

	status := fiber.StatusBadRequest
	switch {
	case errors.As(err, &authErr):
		status = fiber.StatusUnauthorized
	case errors.As(err, &validErr):
		status = fiber.StatusBadRequest
	case errors.As(err, &platformErr):
		status = fiber.StatusUnprocessableEntity
	case errors.As(err, &transportErr):
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"run":   run,
	})
}

// GetCampaign reads a campaign back from the platform.
func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	campaignID := c.Params("id")
	if campaignID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "campaign id is required"})
	}

	sessionID := middleware.GetSessionID(c)
	token := h.settings.Effective(c.Context(), sessionID).MetaAccessToken
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "meta access token is required"})
	}

	details, err := h.meta.GetCampaignDetails(c.Context(), token, campaignID)
	if err != nil {
		var platformErr *metaads.PlatformError
		if errors.As(err, &platformErr) && platformErr.StatusCode == fiber.StatusNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
		}
		h.log.Error("campaign details lookup failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: details})
}
