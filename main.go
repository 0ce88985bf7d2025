package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ashokt15/taskmate/modules/activity"
	"github.com/ashokt15/taskmate/modules/api"
	"github.com/ashokt15/taskmate/modules/auth"
	"github.com/ashokt15/taskmate/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Taskmate ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())     // Independent module (provides identity services)
	app.Register(activity.NewModule()) // Event consumer (subscribes to task events)
	app.Register(task.NewModule())     // Task store (emits lifecycle events)
	app.Register(api.NewModule())      // Driving adapter (depends on the rest)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /auth/register  - Register and receive a token")
	log.Println("  POST   /auth/login     - Login and receive a token")
	log.Println("  GET    /health         - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /auth/profile   - Current user profile")
	log.Println("  GET    /tasks          - List tasks, newest first")
	log.Println("  POST   /tasks          - Create a task")
	log.Println("  PUT    /tasks/:id      - Update a task")
	log.Println("  DELETE /tasks/:id      - Delete a task")
	log.Println("  GET    /activity       - Recent task activity")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
