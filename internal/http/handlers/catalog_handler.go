package handlers

import (
	"github.com/adforge/backend/internal/http/dto"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the fixed option lists the brief form is built from.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

type CatalogObjective struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type CatalogCallToAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type CatalogCountry struct {
	Name string `json:"name"`
	ISO  string `json:"iso"`
}

var campaignObjectives = []CatalogObjective{
	{ID: "AWARENESS", Label: "Brand Awareness"},
	{ID: "CONSIDERATION", Label: "Consideration"},
	{ID: "CONVERSIONS", Label: "Conversions"},
}

var callToActions = []CatalogCallToAction{
	{ID: "LEARN_MORE", Label: "Learn More"},
	{ID: "SIGN_UP", Label: "Sign Up"},
	{ID: "SHOP_NOW", Label: "Shop Now"},
	{ID: "CONTACT_US", Label: "Contact Us"},
	{ID: "SUBSCRIBE", Label: "Subscribe"},
}

var targetCountries = []CatalogCountry{
	{Name: "USA", ISO: "US"},
	{Name: "UK", ISO: "GB"},
	{Name: "India", ISO: "IN"},
	{Name: "Canada", ISO: "CA"},
	{Name: "Australia", ISO: "AU"},
	{Name: "Germany", ISO: "DE"},
	{Name: "France", ISO: "FR"},
	{Name: "Japan", ISO: "JP"},
	{Name: "Brazil", ISO: "BR"},
	{Name: "Mexico", ISO: "MX"},
	{Name: "Spain", ISO: "ES"},
	{Name: "Italy", ISO: "IT"},
}

func (h *CatalogHandler) GetObjectives(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaignObjectives})
}

func (h *CatalogHandler) GetCallToActions(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: callToActions})
}

func (h *CatalogHandler) GetCountries(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: targetCountries})
}
