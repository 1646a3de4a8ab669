package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	apiv1 "hr-pipeline-backend/controllers/v1"
	_ "hr-pipeline-backend/docs"
	"hr-pipeline-backend/fiberlog"
	"hr-pipeline-backend/initializers"
	"hr-pipeline-backend/lib/ws"
	"hr-pipeline-backend/middleware"
)

// @title HR pipeline API
// @version 1.0
// @description Demandes de recrutement, candidats, entretiens, offres et visites médicales
// @BasePath /
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // limit of 20MB
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: config.Conf.Swagger.FilePath,
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	app.Mount("/api/v1", apiV1)
	apiv1.InitAuthApiRouters(apiV1)

	// всё ниже требует токен и проверяется по правилам ролей
	apiV1.Use(middleware.AuthorizationRequired())
	apiV1.Use(middleware.RbacMiddleware())
	apiv1.InitRbacApiRouters(apiV1)
	apiv1.InitUsersApiRouters(apiV1)
	apiv1.InitHiringRequestApiRouters(apiV1)
	apiv1.InitCandidateApiRouters(apiV1)
	apiv1.InitInterviewApiRouters(apiV1)
	apiv1.InitOfferApiRouters(apiV1)
	apiv1.InitNotificationApiRouters(apiV1)
	apiv1.InitDashboardApiRouters(apiV1)

	//ws
	wsApp := fiber.New()
	wsApp.Use(middleware.AuthorizationRequired())
	app.Mount("/ws", wsApp)
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
