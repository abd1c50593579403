package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookhive/config"
	"bookhive/services/booking"

	"github.com/hibiken/asynq"
)

const TypeCompletionSweep = "booking:completion_sweep"

// InitCompletionWorker runs the async worker in background. It periodically
// sweeps active bookings whose service date has passed and marks them
// completed.
func InitCompletionWorker(svc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCompletionSweep, handleCompletionSweep(svc))

	interval := config.AppConfig.CompletionSweepMinutes
	if interval <= 0 {
		interval = 60
	}
	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(
		fmt.Sprintf("@every %dm", interval),
		asynq.NewTask(TypeCompletionSweep, nil),
	); err != nil {
		log.Fatalf("[CompletionWorker] failed to register sweep schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[CompletionWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[CompletionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CompletionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CompletionWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleCompletionSweep(svc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		completed, err := svc.CompleteDueBookings(ctx)
		if err != nil {
			log.Printf("[CompletionWorker] sweep failed: %v", err)
			return err
		}
		if completed > 0 {
			log.Printf("[CompletionWorker] completed %d past-due bookings", completed)
		}
		return nil
	}
}
