package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/flow-hydraulics/flow-bank/bank"
	"github.com/flow-hydraulics/flow-bank/configs"
	"github.com/flow-hydraulics/flow-bank/console"
	"github.com/flow-hydraulics/flow-bank/datastore/gorm"
	log "github.com/sirupsen/logrus"
)

const version = "1.0.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var printVersion bool

	// If we should just print the version number and exit
	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.Parse()
	if err != nil {
		panic(err)
	}

	b, cleanup, err := setup(cfg)
	if err != nil {
		log.Fatal(err)
	}

	err = serve(b, os.Stdin, os.Stdout)
	cleanup()

	// A failed save at exit has already been reported on the console.
	if err != nil {
		log.Warn(err)
	}

	os.Exit(0)
}

// setup configures logging, opens the configured store and loads the bank.
// The returned cleanup func releases the store.
func setup(cfg *configs.Config) (*bank.Bank, func(), error) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.WithFields(log.Fields{"store": cfg.StoreType}).Debug("Starting bank")

	var opts []bank.Option
	cleanup := func() {}

	if cfg.StoreType == configs.StoreTypeGorm {
		db, err := gorm.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { gorm.Close(db) }

		opts = append(opts, bank.WithStore(gorm.NewStore(db)))
	}

	return bank.New(cfg, opts...), cleanup, nil
}

// serve runs the console until the user exits. The bank is closed on exit.
func serve(b *bank.Bank, in io.Reader, out io.Writer) error {
	// Trap interrupt, save and exit. The console is blocked reading input at
	// that point so it can not do it itself.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	done := make(chan struct{})

	defer func() {
		signal.Stop(c)
		close(done)
	}()

	go func() {
		select {
		case sig := <-c:
			log.Infof("Got signal: %s. Saving and shutting down..", sig)
			if err := b.Close(); err != nil {
				log.Warn(err)
			}
			os.Exit(0)
		case <-done:
		}
	}()

	return console.New(b, in, out).Run()
}
