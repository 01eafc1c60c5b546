package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/tutoria/core"
	"github.com/trezcool/tutoria/core/listing"
	"github.com/trezcool/tutoria/core/resources"
	eventsvc "github.com/trezcool/tutoria/services/events"
	logsvc "github.com/trezcool/tutoria/services/logger"
	"github.com/trezcool/tutoria/storage/database"
	boiledrepos "github.com/trezcool/tutoria/storage/database/sqlboiler"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	ctx := context.Background()
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		logger.Fatal("setting up database", err)
	}
	db, err := database.Open(ctx, conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	events := eventsvc.New(conf, logger)

	// start CLI
	cli := commandLine{
		db: db.DB,
		listingSvc: listing.NewService(
			resources.NewRegistry(),
			listing.NewParser(validate, translator),
			listing.NewExecutor(boiledrepos.NewListingStore(db)),
			events,
			logger,
		),
		stdout:     os.Stdout,
		createFunc: createFile,
	}
	err = cli.run(os.Args)
	if err != nil && err != errHelp {
		logger.Error("admin command failed", err)
	}
	if kp, ok := events.(*eventsvc.KafkaPublisher); ok {
		_ = kp.Close()
	}
	_ = db.Close()
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}
