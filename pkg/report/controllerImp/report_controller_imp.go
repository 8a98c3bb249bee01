package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"readquest/pkg/httpx"
	"readquest/pkg/report/service"
)

type ReportCtrl struct{ svc service.ReportService }

func New(svc service.ReportService) *ReportCtrl { return &ReportCtrl{svc} }

func (h *ReportCtrl) Get(c echo.Context) error {
	out, err := h.svc.Build(c.Request().Context(), c.Get("sid").(string))
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportCtrl) Export(c echo.Context) error {
	f, err := h.svc.Export(c.Request().Context(), c.Get("sid").(string))
	if err != nil {
		return httpx.Error(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="reading-journey.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
