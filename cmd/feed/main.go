// Command main prints a ranked feed for a channel, the same ordering the
// presentation layer consumes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"chatroom/internal/cache"
	"chatroom/internal/config"
	"chatroom/internal/database"
	"chatroom/internal/feed"
	"chatroom/internal/observability"
	"chatroom/internal/ranking"
	"chatroom/internal/repository"
)

func main() {
	channelID := flag.Uint("channel", 1, "Channel to rank")
	mode := flag.String("mode", "", "Sort mode: new, hot, top")
	window := flag.String("window", "", "Time window for top: hour, day, week, month, year, all")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *mode == "" {
		*mode = cfg.DefaultSortMode
	}
	if *window == "" {
		*window = cfg.DefaultTimeWindow
	}

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "chatroom-feed",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.TracingOTLPEndpoint,
		SamplerRatio: cfg.TracingSamplerRatio,
	})
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	defer shutdown(context.Background())

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	cache.InitRedis(cfg.RedisURL)

	orch := feed.NewOrchestrator(ranking.Mode(*mode), ranking.Window(*window))
	svc := feed.NewService(repository.NewPostRepository(db), orch,
		time.Duration(cfg.FeedCacheTTLSecs)*time.Second)

	posts, err := svc.ChannelFeed(context.Background(), *channelID)
	if err != nil {
		log.Fatalf("Failed to rank channel %d: %v", *channelID, err)
	}

	fmt.Printf("Channel %d (%s/%s): %d posts\n", *channelID, orch.Mode(), orch.Window(), len(posts))
	now := time.Now()
	for i, p := range posts {
		fmt.Printf("%3d. [%+d net, %d total] hot=%.4f %s\n",
			i+1, p.NetVotes(), p.TotalVotes(),
			ranking.HotScore(p.NetVotes(), p.CreatedAt, now), p.Title)
	}
}
