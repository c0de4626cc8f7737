package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"road-inspector/config"
	telegram "road-inspector/internal/api"
	"road-inspector/internal/container"
	"road-inspector/internal/infrastructure/report"
	"road-inspector/internal/infrastructure/storage"
	"road-inspector/internal/infrastructure/vision"
	"road-inspector/internal/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.VideoSource == "" {
		log.Fatal("VIDEO_SOURCE is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := vision.OpenVideoSource(cfg.VideoSource)
	if err != nil {
		log.Fatalf("Failed to open video source: %v", err)
	}
	defer source.Close()

	width, height := source.Size()
	log.Printf("Opened %s: %dx%d @ %.1f fps (queue depth %d, block=%t)",
		cfg.VideoSource, width, height, source.FPS(), cfg.Queue.Depth, cfg.Queue.Block)

	tracker, err := tracking.New(cfg.Tracking)
	if err != nil {
		log.Fatalf("Failed to create tracker: %v", err)
	}

	detector := vision.NewGoCVDetector(cfg.Vision)
	defer detector.Close()

	// Получатели отчётов; бот добавляется ниже, если задан токен
	sinks := report.NewMulti(report.NewLogSink(cfg.Verbose))

	subRepo := storage.NewMemorySubscriberRepository()
	appContainer := container.New(subRepo, detector, tracker, sinks, cfg.Queue)

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID, appContainer.SubscriptionService, appContainer.InspectionService)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		sinks.Add(bot)

		go func() {
			if err := bot.Run(ctx); err != nil {
				log.Printf("Bot error: %v", err)
			}
		}()
	}

	log.Printf("Inspection %s is running...", appContainer.InspectionService.SessionID())
	summary, err := appContainer.Runner.Run(ctx, source)
	if err != nil {
		log.Printf("Stopped with error: %v", err)
	}

	log.Printf("Frames skipped: %d, dropped: %d", summary.FramesSkipped, summary.FramesDropped)
	if summary.UniqueDefects > 0 {
		log.Printf("Frames to confirmation: mean %.2f, std %.2f", summary.MeanFramesToConfirm, summary.StdDevFramesToConfirm)
	}
	log.Printf("Done. Processed %d frames. Final confirmed defects: %d.", summary.FramesProcessed, summary.UniqueDefects)
}
