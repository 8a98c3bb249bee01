// pkg/httpx/errors.go

package httpx

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"readquest/entities"
)

// Error maps domain errors onto JSON responses at the handler boundary, so
// no step handler leaks internals and every failure keeps its kind:
// validation, policy rejection, configuration, missing session, or generic.
func Error(c echo.Context, err error) error {
	var nse *entities.NotSafeError
	switch {
	case errors.As(err, &nse):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{
			"error":  "content blocked",
			"reason": nse.Reason,
		})
	case errors.Is(err, entities.ErrEmptyInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "required field is empty"})
	case errors.Is(err, entities.ErrBadGenre):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown article genre"})
	case errors.Is(err, entities.ErrNoCredential):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "the safety system is unavailable: no API key is configured"})
	case errors.Is(err, entities.ErrNoSession):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no article or journey in progress"})
	case errors.Is(err, entities.ErrNotReady):
		return c.JSON(http.StatusConflict, map[string]string{"error": "finish every activity first"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
