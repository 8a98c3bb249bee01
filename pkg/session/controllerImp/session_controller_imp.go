package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"readquest/pkg/httpx"
	"readquest/pkg/session/service"
)

type SessionCtrl struct{ svc service.SessionService }

func New(svc service.SessionService) *SessionCtrl { return &SessionCtrl{svc} }

// Get answers "is there something to resume?". The client shows the resume
// prompt only when resumable is true.
func (h *SessionCtrl) Get(c echo.Context) error {
	snap, err := h.svc.Load(c.Get("sid").(string))
	if err != nil {
		return httpx.Error(c, err)
	}
	if snap == nil {
		return c.JSON(http.StatusOK, map[string]any{"resumable": false})
	}
	return c.JSON(http.StatusOK, map[string]any{"resumable": true, "session": snap})
}

func (h *SessionCtrl) Reset(c echo.Context) error {
	if err := h.svc.Reset(c.Get("sid").(string)); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
