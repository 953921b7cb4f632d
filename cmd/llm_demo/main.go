// README: Runs one itinerary prompt through the LLM gateway and prints the probe results.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"eztravel/internal/ai"
	"eztravel/internal/config"
	"eztravel/internal/logging"
)

func main() {
	_ = godotenv.Load()
	prompt := flag.String("prompt", "Suggest a destination and plan a 3-day trip. Preferred activities: hiking, food. Weather preference: any.", "prompt sent to the model")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	backend, closeBackend, err := ai.NewBackend(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM backend: %v", err)
	}
	defer closeBackend()

	logger := logging.Discard()
	if cfg.IsDev() {
		logger = nil
	}
	gw := ai.NewGateway(backend, cfg.LLM.Model, nil, logger)

	info := gw.Info(ctx)
	fmt.Printf("Model: %s (%s)\n", info.Model, info.Status)
	if info.Error != "" {
		fmt.Printf("Info error: %s\n", info.Error)
	}
	if err := gw.Liveness(ctx); err != nil {
		fmt.Printf("Liveness: down (%v)\n", err)
	} else {
		fmt.Println("Liveness: ok")
	}
	if d, err := gw.Uptime(ctx, time.Now()); err != nil {
		fmt.Printf("Uptime: unknown (%v)\n", err)
	} else {
		fmt.Printf("Uptime: %s\n", ai.FormatUptime(d))
	}

	fmt.Printf("Prompt: %s\n", *prompt)
	res := gw.GenerateItinerary(ctx, *prompt)
	switch {
	case res.Blocked:
		fmt.Println("Prompt blocked by safety filter")
		os.Exit(2)
	case !res.OK():
		log.Fatal(res.Err)
	}

	fmt.Printf("Destination: %s\n", res.Output.Destination)
	var pretty strings.Builder
	enc := json.NewEncoder(&pretty)
	enc.SetIndent("", "  ")
	var v any
	if err := json.Unmarshal(res.Output.Itinerary, &v); err == nil {
		_ = enc.Encode(v)
	}
	fmt.Printf("Itinerary:\n%s", pretty.String())
}
