package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcare/clinic-api/internal/core/ports"
)

type DoctorHandler struct {
	directory ports.DoctorDirectory
}

func NewDoctorHandler(directory ports.DoctorDirectory) *DoctorHandler {
	return &DoctorHandler{directory: directory}
}

// List handles GET /doctors, used by the public booking form.
//
// @Summary      List doctors
// @Tags         doctors
// @Produce      json
// @Success      200  {array}   doctorResponse
// @Failure      500  {object}  errorResponse
// @Router       /doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.directory.ListDoctors(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]doctorResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, toDoctorResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}
