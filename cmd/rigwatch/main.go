package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/brnsen/rigwatch/cmd/rigwatch/cmd"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	go func() {
		s := <-quit
		log.Infof("got %v, shutting down", s)
		cancel()
		<-time.After(15 * time.Second)
		log.Fatal("took too long to shut down, forcefully exiting")
	}()

	cmd.Execute(ctx)
}
