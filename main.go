package main

import (
	"check_isam/config"
	"check_isam/handler"
	"check_isam/logger"
	"context"
	"os"
)

// main is the entry point of the plugin. It initializes logging with the default configuration and hands the
// command line to the dispatcher, whose result becomes the Nagios exit code.
func main() {

	cfg := config.LoadConfig()

	log := logger.NewLogger(cfg.Log, false)

	dispatcher := handler.NewDispatcher(os.Stdout, handler.DialSNMP, log)

	os.Exit(dispatcher.Execute(context.Background(), os.Args[1:]))
}
