package router

import (
	"github.com/labstack/echo/v4"

	"readquest/pkg/journey/controller"
	"readquest/pkg/middleware"
)

func New(
	e *echo.Echo,
	journeyCtrl controller.JourneyController,
	articleGenerate func(echo.Context) error,
	sessionCtrl interface {
		Get(echo.Context) error
		Reset(echo.Context) error
	},
	settingsCtrl interface {
		PutAPIKey(echo.Context) error
		PutNickname(echo.Context) error
	},
	feedbackRun func(echo.Context) error,
	reportCtrl interface {
		Get(echo.Context) error
		Export(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.StudentID())
	e.GET("/health", healthCtrl.Health)

	e.GET("/session", sessionCtrl.Get)
	e.DELETE("/session", sessionCtrl.Reset)

	e.PUT("/settings/apikey", settingsCtrl.PutAPIKey)
	e.PUT("/settings/nickname", settingsCtrl.PutNickname)

	e.POST("/articles", articleGenerate)

	g := e.Group("/journey")
	g.POST("/steps/pre-read", journeyCtrl.PreRead)
	g.POST("/steps/during-read", journeyCtrl.DuringRead)
	g.POST("/steps/adjustment", journeyCtrl.Adjustment)
	g.POST("/steps/post-read", journeyCtrl.PostRead)
	g.GET("", journeyCtrl.Summary)
	g.POST("/feedback", feedbackRun)
	g.GET("/report", reportCtrl.Get)
	g.GET("/report/export", reportCtrl.Export)

	return e
}
