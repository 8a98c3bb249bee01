package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"readquest/entities"
	"readquest/pkg/article/service"
	"readquest/pkg/httpx"
)

type ArticleCtrl struct{ svc service.ArticleService }

func New(svc service.ArticleService) *ArticleCtrl { return &ArticleCtrl{svc} }

func (h *ArticleCtrl) Generate(c echo.Context) error {
	var req struct {
		Genre string `json:"genre"`
		Topic string `json:"topic"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Generate(c.Request().Context(), c.Get("sid").(string), entities.Genre(req.Genre), req.Topic)
	if err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
