// Command thingserver runs the simplething agent: it polls the climate
// sensor, keeps reading history, and serves the HTTP API for hardware and
// LED control.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/sirupsen/logrus"

	"github.com/simplething-io/simplething-app/hardware"
	"github.com/simplething-io/simplething-app/server"
	"github.com/simplething-io/simplething-app/store"
)

func main() {
	addr := flag.String("addr", ":8080", "address to serve the HTTP API on")
	storeBackend := flag.String("store", "bbolt", "store backend (bbolt or badger)")
	storePath := flag.String("store-path", "simplething.db", "path of the store database")
	scanInterval := flag.Duration("scan-interval", time.Minute, "how often to poll the climate sensor")
	simulated := flag.Bool("simulated", false, "seed the store with simulated hardware if none is configured")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	logger := logrus.New()
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	var st store.Store
	var err error
	switch *storeBackend {
	case "bbolt":
		st, err = store.OpenBBolt(*storePath, 0666, nil)
	case "badger":
		st, err = store.OpenBadger(badger.DefaultOptions(*storePath))
	default:
		logger.Fatalf("unknown store backend %q", *storeBackend)
	}
	if err != nil {
		logger.Fatalf("unable to open store: %s", err)
	}
	defer st.Close()

	if *simulated {
		if _, err := st.HardwareConfig(); err != nil {
			logger.Info("seeding store with simulated hardware config")
			if err := st.PutHardwareConfig(hardware.Config{Simulated: &hardware.SimulatedConfig{}}); err != nil {
				logger.Fatalf("unable to seed hardware config: %s", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.Server{
		Addr:         *addr,
		Store:        st,
		Logger:       logger,
		ScanInterval: *scanInterval,
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatalf("server exited: %s", err)
	}
}
