package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"readquest/config"
	"readquest/database"
	"readquest/entities"
	"readquest/router"

	// AI façade
	"readquest/pkg/ai"

	// Article
	articleCtrlImp "readquest/pkg/article/controllerImp"
	articleRepoImp "readquest/pkg/article/repositoryImp"
	articleSvcImp "readquest/pkg/article/serviceImp"

	// Session
	sessionCtrlImp "readquest/pkg/session/controllerImp"
	sessionRepoImp "readquest/pkg/session/repositoryImp"
	sessionSvcImp "readquest/pkg/session/serviceImp"

	// Journey
	journeyCtrlImp "readquest/pkg/journey/controllerImp"
	journeySvcImp "readquest/pkg/journey/serviceImp"

	// Feedback
	feedbackCtrlImp "readquest/pkg/feedback/controllerImp"
	feedbackSvcImp "readquest/pkg/feedback/serviceImp"

	// Report
	reportCtrlImp "readquest/pkg/report/controllerImp"
	reportSvcImp "readquest/pkg/report/serviceImp"

	// Settings + Health
	healthCtrlImp "readquest/pkg/health/controllerImp"
	settingsCtrlImp "readquest/pkg/settings/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 4) Storage
	kv := sessionRepoImp.New(db)
	sessionSvc := sessionSvcImp.New(kv)

	// 5) AI façade. The credential resolves per call: injected env value,
	// runtime override, then the persisted manual entry. AI_MOCK=true keeps
	// local runs off the network.
	var llm ai.Client
	if os.Getenv("AI_MOCK") == "true" {
		log.Printf("[main] AI_MOCK=true, using mock client")
		llm = ai.NewMock()
	} else {
		llm = ai.NewGemini(cfg.GeminiEndpoint, cfg.GeminiModel, func() string {
			return cfg.ResolveAPIKey(func() string {
				v, _, _ := kv.Get(settingsCtrlImp.CredentialStudentID, entities.KeyAPIKey)
				return v
			})
		})
	}

	// 6) Services
	articleRepo := articleRepoImp.New(db)
	articleSvc := articleSvcImp.New(llm, articleRepo, sessionSvc)
	journeySvc := journeySvcImp.New(llm, sessionSvc)
	feedbackSvc := feedbackSvcImp.New(llm, sessionSvc)
	reportSvc := reportSvcImp.New(llm, sessionSvc, kv)

	// 7) Controllers
	articleCtrl := articleCtrlImp.New(articleSvc)
	sessionCtrl := sessionCtrlImp.New(sessionSvc)
	journeyCtrl := journeyCtrlImp.New(journeySvc)
	feedbackCtrl := feedbackCtrlImp.New(feedbackSvc)
	reportCtrl := reportCtrlImp.New(reportSvc)
	settingsCtrl := settingsCtrlImp.New(cfg, kv)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 8) Router
	r := router.New(
		e,
		journeyCtrl,
		articleCtrl.Generate,
		sessionCtrl,
		settingsCtrl,
		feedbackCtrl.Run,
		reportCtrl,
		healthCtrl,
	)

	// 9) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
