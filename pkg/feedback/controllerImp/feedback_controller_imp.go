package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"readquest/pkg/feedback/service"
	"readquest/pkg/httpx"
)

type FeedbackCtrl struct{ svc service.FeedbackService }

func New(svc service.FeedbackService) *FeedbackCtrl { return &FeedbackCtrl{svc} }

func (h *FeedbackCtrl) Run(c echo.Context) error {
	out, err := h.svc.Run(c.Request().Context(), c.Get("sid").(string))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
