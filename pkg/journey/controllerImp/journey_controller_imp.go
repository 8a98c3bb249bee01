package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"readquest/entities"
	"readquest/pkg/httpx"
	"readquest/pkg/journey/service"
)

type JourneyCtrl struct{ svc service.JourneyService }

func New(svc service.JourneyService) *JourneyCtrl { return &JourneyCtrl{svc} }

func sid(c echo.Context) string { return c.Get("sid").(string) }

func (h *JourneyCtrl) PreRead(c echo.Context) error {
	var req struct {
		Note string `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.SubmitPreRead(c.Request().Context(), sid(c), req.Note)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JourneyCtrl) DuringRead(c echo.Context) error {
	var req struct {
		Questions []entities.Question `json:"questions"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.SubmitDuringRead(c.Request().Context(), sid(c), req.Questions)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JourneyCtrl) Adjustment(c echo.Context) error {
	var req struct {
		Choice   string `json:"choice"`
		Solution string `json:"solution"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.SubmitAdjustment(c.Request().Context(), sid(c), req.Choice, req.Solution)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JourneyCtrl) PostRead(c echo.Context) error {
	var req struct {
		Slots []string `json:"slots"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.SubmitPostRead(c.Request().Context(), sid(c), req.Slots)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JourneyCtrl) Summary(c echo.Context) error {
	out, err := h.svc.Summary(sid(c))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
