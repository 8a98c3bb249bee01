package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StudentID resolves which student this request belongs to: cookie first,
// then a ?student= override, else a shared default for kiosk-style setups.
func StudentID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie("RQ_STUDENT"); err == nil {
				sid = ck.Value
			}
			if sid == "" {
				if q := c.QueryParam("student"); q != "" {
					c.SetCookie(&http.Cookie{Name: "RQ_STUDENT", Value: q, Path: "/"})
					sid = q
				} else {
					sid = "S_DEFAULT"
					c.SetCookie(&http.Cookie{Name: "RQ_STUDENT", Value: sid, Path: "/"})
				}
			}
			c.Set("sid", sid)
			return next(c)
		}
	}
}
