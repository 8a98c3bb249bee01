package controller

import "github.com/labstack/echo/v4"

type JourneyController interface {
	PreRead(c echo.Context) error
	DuringRead(c echo.Context) error
	Adjustment(c echo.Context) error
	PostRead(c echo.Context) error
	Summary(c echo.Context) error
}
