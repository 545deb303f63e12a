package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmelchor/symreg-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to start: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Shutdown(ctx)
	}()

	if err := a.Run(); err != nil {
		a.Log.Fatal("server exited", "error", err)
	}
}
