package handler

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/middleware"
	"github.com/tradecore/tradecore/api/internal/query"
)

// CompanyService defines the company operations the handler needs
type CompanyService interface {
	List(ctx context.Context, params url.Values) (*query.PagedResult[domain.Company], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	Create(ctx context.Context, input *domain.CompanyInput, actorID *uuid.UUID) (*domain.Company, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.CompanyUpdateInput, actorID *uuid.UUID) (*domain.Company, error)
	Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

// CompaniesHandler handles company endpoints
type CompaniesHandler struct {
	companies CompanyService
	logger    *zap.Logger
}

// NewCompaniesHandler creates a new companies handler
func NewCompaniesHandler(companies CompanyService, logger *zap.Logger) *CompaniesHandler {
	return &CompaniesHandler{
		companies: companies,
		logger:    logger,
	}
}

// ListCompanies handles GET /v1/companies
func (h *CompaniesHandler) ListCompanies(c *fiber.Ctx) error {
	result, err := h.companies.List(c.Context(), queryParams(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list companies")
	}

	return c.JSON(result)
}

// GetCompany handles GET /v1/companies/:companyId
func (h *CompaniesHandler) GetCompany(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid company ID")
	}

	company, err := h.companies.Get(c.Context(), companyID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get company")
	}

	return c.JSON(company)
}

// CreateCompany handles POST /v1/companies
func (h *CompaniesHandler) CreateCompany(c *fiber.Ctx) error {
	var input domain.CompanyInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse company")
	}

	company, err := h.companies.Create(c.Context(), &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create company")
	}

	return c.Status(fiber.StatusCreated).JSON(company)
}

// UpdateCompany handles PATCH /v1/companies/:companyId
func (h *CompaniesHandler) UpdateCompany(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid company ID")
	}

	var input domain.CompanyUpdateInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse company update")
	}

	company, err := h.companies.Update(c.Context(), companyID, &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update company")
	}

	return c.JSON(company)
}

// DeleteCompany handles DELETE /v1/companies/:companyId
func (h *CompaniesHandler) DeleteCompany(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid company ID")
	}

	if err := h.companies.Delete(c.Context(), companyID, middleware.ActorID(c)); err != nil {
		return respondError(c, h.logger, err, "Failed to delete company")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers company routes
func (h *CompaniesHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", auth.RequireAuth())

	v1.Get("/companies", h.ListCompanies)
	v1.Get("/companies/:companyId", h.GetCompany)
	v1.Post("/companies", auth.RequireRole(domain.UserRoleAdmin), h.CreateCompany)
	v1.Patch("/companies/:companyId", auth.RequireRole(domain.UserRoleAdmin), h.UpdateCompany)
	v1.Delete("/companies/:companyId", auth.RequireRole(domain.UserRoleOwner), h.DeleteCompany)
}
