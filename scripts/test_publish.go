//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type LocationHitEvent struct {
	EventID  uuid.UUID `json:"event_id"`
	Name     string    `json:"name"`
	Instance string    `json:"instance"`
	At       time.Time `json:"at"`
}

// cleanName повторяет нормализацию сервиса: латинские буквы и пробелы в нижнем регистре
func cleanName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r == ' ':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		default:
			return -1
		}
	}, s)
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "streams:location_hits", "Popularity stream name")
	name := flag.String("name", "Top Dog", "Location name to promote")
	count := flag.Int("count", 1, "Number of hits to publish")
	api := flag.String("api", "http://localhost:8080", "Service address to check autocomplete, empty to skip")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	for i := 0; i < *count; i++ {
		event := LocationHitEvent{
			EventID:  uuid.New(),
			Name:     cleanName(*name),
			Instance: "test-publish",
			At:       time.Now().UTC(),
		}

		data, err := json.Marshal(event)
		if err != nil {
			log.Fatalf("Failed to marshal event: %v", err)
		}

		id, err := client.XAdd(ctx, &redis.XAddArgs{
			Stream: *stream,
			Values: map[string]interface{}{
				"data": string(data),
			},
		}).Result()
		if err != nil {
			log.Fatalf("Failed to publish event: %v", err)
		}
		fmt.Printf("published %s (%s)\n", id, event.EventID)
	}

	if *api == "" {
		return
	}

	// Даем воркерам применить события
	time.Sleep(time.Second)

	prefix := cleanName(*name)
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	resp, err := http.Get(*api + "/api/v1/search/autocomplete?limit=5&q=" + url.QueryEscape(prefix))
	if err != nil {
		log.Fatalf("Failed to query autocomplete: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Data struct {
			Names []string `json:"names"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Fatalf("Failed to decode autocomplete: %v", err)
	}
	fmt.Printf("autocomplete %q: %v\n", prefix, body.Data.Names)
}
