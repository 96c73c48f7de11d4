package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	redisrepo "github.com/musetix/polls/internal/adapters/repository/redis"
	"github.com/musetix/polls/internal/config"
	"github.com/musetix/polls/internal/core/ports"
	"github.com/musetix/polls/internal/core/services"
)

// Seeds demo polls and a handful of votes, useful for local development and
// manual testing of the listing endpoints.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	var redisURL string
	var votesPerPoll, durationMinutes int
	flag.StringVar(&redisURL, "redis-url", cfg.RedisURL, "Redis connection URL")
	flag.IntVar(&votesPerPoll, "votes", 25, "Votes to cast per poll")
	flag.IntVar(&durationMinutes, "duration", 60, "Poll duration in minutes")
	flag.Parse()

	client, err := redisrepo.NewClient(redisURL)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal(err)
	}

	repo := redisrepo.NewPollRepository(client)
	service := services.NewPollService(repo)

	seeds := []ports.CreatePollInput{
		{
			Question:        "Which exhibition should we extend next season?",
			Options:         []string{"Impressionist Masters", "Ancient Egypt", "Modern Sculpture"},
			DurationMinutes: durationMinutes,
		},
		{
			Question:        "What is the best day for late-night openings?",
			Options:         []string{"Thursday", "Friday", "Saturday"},
			DurationMinutes: durationMinutes,
		},
		{
			Question:        "Should the museum cafe stay open on Mondays?",
			Options:         []string{"Yes", "No"},
			DurationMinutes: durationMinutes,
		},
	}

	log.Println("Seeding demo polls...")

	for _, seed := range seeds {
		pollID, err := service.Create(ctx, seed)
		if err != nil {
			log.Fatalf("Error creating poll: %v", err)
		}

		for i := 0; i < votesPerPoll; i++ {
			input := ports.VoteInput{
				PollID: pollID,
				Option: seed.Options[rand.Intn(len(seed.Options))],
			}
			if err := service.Vote(ctx, input); err != nil {
				log.Fatalf("Error voting on poll %s: %v", pollID, err)
			}
		}

		log.Printf("Seeded poll %s with %d votes", pollID, votesPerPoll)
	}

	log.Println("Seeding completed successfully.")
}
