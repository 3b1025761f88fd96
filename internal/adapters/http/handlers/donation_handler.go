package handlers

import (
	"errors"

	"donation-desk/internal/core/domain"
	"donation-desk/internal/core/services"
	"donation-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles donation endpoints
type DonationHandler struct {
	donations services.DonationManager
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donations services.DonationManager) *DonationHandler {
	return &DonationHandler{donations: donations}
}

// DeleteRequest is the body of DELETE /donations
type DeleteRequest struct {
	ID string `json:"id"`
}

// CreateResponse wraps a stored donation
type CreateResponse struct {
	Success  bool             `json:"success"`
	Donation *domain.Donation `json:"donation"`
}

// ListResponse wraps every stored donation
type ListResponse struct {
	Donations []*domain.Donation `json:"donations"`
}

// Create handles a donor submission
// @Summary Submit donation
// @Description Store a donation form submission. id and submittedAt are assigned when absent.
// @Tags Donations
// @Accept json
// @Produce json
// @Param body body domain.Donation true "Donation"
// @Success 201 {object} CreateResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var input domain.Donation
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	donation, err := h.donations.Submit(c.UserContext(), &input)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return response.ValidationFailed(c, vErr.Error(), vErr.Fields)
		}
		return response.InternalServerError(c, "Failed to save donation")
	}

	return response.Created(c, CreateResponse{Success: true, Donation: donation})
}

// List returns every donation
// @Summary List donations
// @Description List all donations in submission order
// @Tags Donations
// @Produce json
// @Security CookieAuth
// @Success 200 {object} ListResponse
// @Failure 401 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /donations [get]
func (h *DonationHandler) List(c *fiber.Ctx) error {
	donations, err := h.donations.List(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch donations")
	}
	return response.OK(c, ListResponse{Donations: donations})
}

// Delete removes a donation named in the body or the path
// @Summary Delete donation
// @Description Delete a donation by id, given as {"id"} body or /donations/{id}
// @Tags Donations
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param body body DeleteRequest false "Donation id"
// @Param id path string false "Donation id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /donations [delete]
// @Router /donations/{id} [delete]
func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" && len(c.Body()) > 0 {
		var req DeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
		id = req.ID
	}

	err := h.donations.Delete(c.UserContext(), id)
	switch {
	case err == nil:
		return response.OK(c, fiber.Map{"success": true})
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Donation id is required")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Donation not found")
	default:
		return response.InternalServerError(c, "Failed to delete donation")
	}
}
