// One-shot export of a registered detector, without the worker loop.
package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/deepscene/det3d/config"
	"github.com/deepscene/det3d/pkg/detection"
	"github.com/deepscene/det3d/pkg/export"
	"github.com/deepscene/det3d/pkg/logger"
	"github.com/deepscene/det3d/pkg/registry"

	// bundled detector registrations
	_ "github.com/deepscene/det3d/pkg/zoo"
)

func main() {
	configPath := flag.String("file", "config/config.yaml", "configuration file")
	modelID := flag.String("model", "", "registry ID of the detector to export")
	name := flag.String("name", "", "export filename, defaults to the detector's save name")
	saveDir := flag.String("dir", "", "output directory, defaults to export.savedir")
	list := flag.Bool("list", false, "list registered detectors and exit")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		panic(err)
	}

	ctx := context.Background()
	logger, _ := logger.GetZapLogger(ctx)
	defer func() {
		// can't handle the error due to https://github.com/uber-go/zap/issues/880
		_ = logger.Sync()
	}()

	if *list {
		for _, id := range registry.List() {
			fmt.Println(id)
		}
		return
	}

	if *modelID == "" {
		logger.Fatal("missing -model")
	}

	dir := *saveDir
	if dir == "" {
		dir = config.Config.Export.SaveDir
	}

	d, err := registry.New(*modelID)
	if err != nil {
		logger.Fatal(err.Error())
	}

	path, err := detection.Export(ctx, d, export.NewGraphExporter(), dir, *name)
	if err != nil {
		logger.Fatal(err.Error())
	}

	logger.Info("model exported",
		zap.String("model", *modelID),
		zap.String("sensor", d.Sensor()),
		zap.String("path", path))
}
