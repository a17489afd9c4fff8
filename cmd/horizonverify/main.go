package main

import (
	"fmt"
	"os"

	"github.com/Grrwahrr/tari/infrastructure/config"
	"github.com/Grrwahrr/tari/infrastructure/logger"
	"github.com/Grrwahrr/tari/infrastructure/os/signal"
	"github.com/Grrwahrr/tari/util/profiling"
	"github.com/jessevdk/go-flags"
)

func main() {
	interrupt := signal.InterruptListener()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	logFile, errLogFile := cfg.LogFiles()
	logger.InitLog(logFile, errLogFile)

	if cfg.Profile != "" {
		profiling.Start(cfg.Profile, log)
	}

	exitCode := 0
	digest, err := verify(cfg, interrupt)
	if err != nil {
		log.Errorf("Horizon verification failed: %+v", err)
		fmt.Fprintf(os.Stderr, "Horizon verification failed: %s\n", err)
		exitCode = 1
	} else {
		fmt.Printf("Horizon state is valid. State digest: %s\n", digest)
	}

	logger.BackendLog.Close()
	os.Exit(exitCode)
}
