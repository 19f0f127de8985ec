/*
Remesh loads triangle meshes, welds their exactly-duplicated vertices
and exports the compacted result. Point it at a config file or run it
with the defaults.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hoshiryu/remesh/pipeline"
	"github.com/hoshiryu/remesh/testbed"
)

func main() {
	configPath := "remesh.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := pipeline.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}

	if config.Assets.SeedSamples {
		if err := testbed.WriteSamples(config.Assets.InputDir); err != nil {
			panic(err)
		}
	}

	pl, err := pipeline.New(config)
	if err != nil {
		panic(err)
	}

	if err := pl.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = pl.Shutdown()
	}()

	// run pipeline
	if err := pl.Run(); err != nil {
		panic(err)
	}
}
