package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/deepscene/det3d/config"
	"github.com/deepscene/det3d/pkg/cache"
	"github.com/deepscene/det3d/pkg/db"
	"github.com/deepscene/det3d/pkg/export"
	"github.com/deepscene/det3d/pkg/inventory"
	"github.com/deepscene/det3d/pkg/logger"
	"github.com/deepscene/det3d/pkg/registry"
	"github.com/deepscene/det3d/pkg/repository"
	"github.com/deepscene/det3d/pkg/service"

	det3dWorker "github.com/deepscene/det3d/pkg/worker"

	// bundled detector registrations
	_ "github.com/deepscene/det3d/pkg/zoo"
)

func main() {
	if err := config.Init(config.ParseConfigFlag()); err != nil {
		log.Fatal(err.Error())
	}

	ctx := context.Background()
	logger, _ := logger.GetZapLogger(ctx)
	defer func() {
		// can't handle the error due to https://github.com/uber-go/zap/issues/880
		_ = logger.Sync()
	}()
	logger.Info("Config initialized")

	if config.Config.Export.Inventory != "" {
		entries, err := inventory.Load(config.Config.Export.Inventory)
		if err != nil {
			logger.Fatal(err.Error())
		}
		if err := inventory.Validate(entries, registry.List()); err != nil {
			logger.Fatal(err.Error())
		}
	}

	gormDB := db.GetConnection()
	defer db.Close(gormDB)

	redisClient := redis.NewClient(&config.Config.Cache.Redis.RedisOptions)
	defer redisClient.Close()

	svc := service.NewService(
		repository.NewRepository(gormDB),
		export.NewGraphExporter(),
		cache.NewCache(redisClient, config.Config.Cache.TTL),
		config.Config.Export.SaveDir,
		logger,
	)

	cw := det3dWorker.NewWorker(svc)

	c, err := client.Dial(client.Options{
		HostPort:  config.Config.Temporal.HostPort,
		Namespace: config.Config.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalln("Unable to create client", err)
	}
	defer c.Close()

	w := worker.New(c, det3dWorker.TaskQueue, worker.Options{})

	w.RegisterWorkflow(cw.ExportModelWorkflow)
	w.RegisterActivity(cw.ExportModelActivity)

	err = w.Run(worker.InterruptCh())
	if err != nil {
		logger.Fatal(fmt.Sprintf("Unable to start worker %s", err))
	}
}
