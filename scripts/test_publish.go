//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/route-engine/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	adventure := flag.Float64("adventure", 0.7, "adventure level 0..1")
	mode := flag.String("mode", "pedestrian", "transport mode: car, bicycle, pedestrian")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Валенсия: Plaça de l'Ajuntament -> Ciutat de les Arts i les Ciències
	settings := domain.DefaultRouteSettings()
	settings.AdventureLevel = *adventure
	settings.TransportMode = domain.TransportMode(*mode)

	event := domain.RouteGenerateEvent{
		RequestID:   uuid.New(),
		Origin:      domain.Coordinate{Latitude: 39.4699, Longitude: -0.3763},
		Destination: domain.Coordinate{Latitude: 39.4542, Longitude: -0.3506},
		Settings:    &settings,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем хвост стрима ответов до публикации
	lastID := "0"
	if entries, err := client.XRevRangeN(ctx, domain.StreamRouteDone, "+", "-", 1).Result(); err == nil && len(entries) > 0 {
		lastID = entries[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamRouteGenerate,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamRouteGenerate)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   Adventure: %.2f, mode: %s\n", settings.AdventureLevel, settings.TransportMode)

	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamRouteDone)

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamRouteDone, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil && err != redis.Nil {
			log.Printf("read failed: %v", err)
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var done domain.RouteDoneEvent
				if err := json.Unmarshal([]byte(dataStr), &done); err != nil {
					continue
				}
				if done.RequestID != event.RequestID {
					continue
				}

				pretty, _ := json.MarshalIndent(done, "", "  ")
				fmt.Printf("\nResponse received:\n%s\n", pretty)
				return
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
