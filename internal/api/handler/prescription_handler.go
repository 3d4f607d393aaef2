package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcare/clinic-api/internal/api/metrics"
	"github.com/smartcare/clinic-api/internal/core/domain"
	"github.com/smartcare/clinic-api/internal/core/ports"
)

// PrescriptionHandler handles HTTP requests for prescriptions.
type PrescriptionHandler struct {
	service ports.PrescriptionService
}

func NewPrescriptionHandler(service ports.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// Write handles POST /prescriptions.
//
// @Summary      Write a prescription
// @Description  The authenticated doctor is recorded as the author.
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      writePrescriptionRequest  true  "Prescription"
// @Success      201   {object}  writePrescriptionResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /prescriptions [post]
func (h *PrescriptionHandler) Write(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	var req writePrescriptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Write(c.Request().Context(), caller, ports.WritePrescriptionInput{
		PatientName: req.PatientName,
		Diagnosis:   req.Diagnosis,
		Medicines:   req.Medicines,
		Notes:       req.Notes,
		Date:        req.Date,
	})
	if err != nil {
		return err
	}

	metrics.PrescriptionsWrittenTotal.Inc()
	return c.JSON(http.StatusCreated, writePrescriptionResponse{
		Message:      "Prescription saved",
		Prescription: toPrescriptionResponse(p),
	})
}

// List handles GET /prescriptions and GET /admin/prescriptions.
//
// @Summary      List prescriptions
// @Tags         prescriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   prescriptionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /prescriptions [get]
// @Router       /admin/prescriptions [get]
func (h *PrescriptionHandler) List(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPrescriptionResponses(items))
}

// Delete handles DELETE /admin/prescriptions/:id.
//
// @Summary      Delete a prescription
// @Tags         prescriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Prescription id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/prescriptions/{id} [delete]
func (h *PrescriptionHandler) Delete(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsDeletedTotal.WithLabelValues(domain.EntityPrescription).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Prescription deleted"})
}
