package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/outfitterhq/outfitterhq-sub004/internal/huntcodes"
	"github.com/outfitterhq/outfitterhq-sub004/internal/service"
)

type HuntCodeHandler struct {
	huntCodes *service.HuntCodeService
}

func NewHuntCodeHandler(huntCodes *service.HuntCodeService) *HuntCodeHandler {
	return &HuntCodeHandler{
		huntCodes: huntCodes,
	}
}

// List returns the draw codes matching the requested species and weapon
// for the resolved outfitter's state catalog.
// GET /api/v1/hunt-codes?species=Elk&weapon=Archery
func (h *HuntCodeHandler) List(c *fiber.Ctx) error {
	outfitterID := outfitterIDFromLocals(c)

	species := c.Query("species")
	weapon := c.Query("weapon")

	options, err := h.huntCodes.ListOptions(c.Context(), outfitterID, species, weapon)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Failed to load hunt codes",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"options": options,
		"total":   len(options),
	})
}

// Species lists the canonical species labels the matcher understands
// GET /api/v1/hunt-codes/species
func (h *HuntCodeHandler) Species(c *fiber.Ctx) error {
	labels := make([]string, 0, len(huntcodes.SpeciesAliases))
	for label := range huntcodes.SpeciesAliases {
		labels = append(labels, label)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"species": labels,
	})
}

// WeaponLabel resolves a code's weapon digit to its label
// GET /api/v1/hunt-codes/weapons/:digit
func (h *HuntCodeHandler) WeaponLabel(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"digit": c.Params("digit"),
		"label": huntcodes.LabelForDigit(c.Params("digit")),
	})
}
