package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/scholara/portal/auth"
	"github.com/scholara/portal/internal/config"
	"github.com/scholara/portal/server"
	"github.com/scholara/portal/session"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	sessions := session.NewManager(sessionStorage(c), c.GetMaxSessionAge())
	google := googleSignIn(c)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, sessions, google)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// sessionStorage picks the per-session backing store. With a data
// folder configured each session persists across restarts; without
// one, sessions live in memory only.
func sessionStorage(c config.Config) func() session.Storage {
	folder := c.GetDataFolder()
	if folder == "" {
		return func() session.Storage { return session.NewInMemoryStorage() }
	}
	return func() session.Storage {
		return session.NewFileStorage(filepath.Join(folder, "session-"+uuid.New().String()+".json"))
	}
}

// googleSignIn builds the federated sign-in helper when a client ID is
// configured; otherwise the portal runs with password login only.
func googleSignIn(c config.Config) *auth.Google {
	if c.GetGoogleClientID() == "" {
		return nil
	}

	redirectURL := c.GetBaseURL() + "/auth/google/callback"
	google, err := auth.NewGoogle(context.Background(), c, redirectURL)
	if err != nil {
		log.Printf("Google sign-in disabled: %s\n", err)
		return nil
	}
	return google
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
