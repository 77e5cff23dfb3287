// Package main implements the entry point for the Cadence API server,
// a project management backend covering projects, sprints, tasks, time
// tracking, finances, risks, goals and peer feedback.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
