package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"readquest/config"
	"readquest/entities"
	"readquest/pkg/httpx"
	"readquest/pkg/session/repository"
)

// CredentialStudentID scopes the persisted API key: the credential is
// per-deployment, not per-student.
const CredentialStudentID = ""

type SettingsCtrl struct {
	cfg *config.AppConfig
	kv  repository.SessionRepository
}

func New(cfg *config.AppConfig, kv repository.SessionRepository) *SettingsCtrl {
	return &SettingsCtrl{cfg: cfg, kv: kv}
}

// PutAPIKey stores a manually supplied credential for future sessions and
// installs it as the runtime override right away.
func (h *SettingsCtrl) PutAPIKey(c echo.Context) error {
	var req struct {
		Key string `json:"key"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "key must not be empty"})
	}
	if err := h.kv.Put(CredentialStudentID, entities.KeyAPIKey, key); err != nil {
		return httpx.Error(c, err)
	}
	h.cfg.SetAPIKey(key)
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SettingsCtrl) PutNickname(c echo.Context) error {
	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	nick := strings.TrimSpace(req.Nickname)
	if nick == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "nickname must not be empty"})
	}
	if err := h.kv.Put(c.Get("sid").(string), entities.KeyNickname, nick); err != nil {
		return httpx.Error(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
