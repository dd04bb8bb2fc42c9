package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/matst80/learn-finder/pkg/client"
	"github.com/matst80/learn-finder/pkg/common"
	"github.com/matst80/learn-finder/pkg/search"
	"github.com/matst80/learn-finder/pkg/server"
	"github.com/matst80/learn-finder/pkg/tracking"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	country       = "us"
	listenAddress = ":8080"
	searchApiUrl  = "http://localhost:8063"
)

func init() {
	if c, ok := os.LookupEnv("COUNTRY"); ok {
		country = c
	}
	if addr, ok := os.LookupEnv("LISTEN_ADDRESS"); ok {
		listenAddress = addr
	}
	if u, ok := os.LookupEnv("SEARCH_API_URL"); ok {
		searchApiUrl = u
	}
}

func envInt(name string, fallback int) int {
	if v, ok := os.LookupEnv(name); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func main() {
	logger, err := common.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      45 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		logger.Warn("JWT_SECRET not set, list endpoints reject every request")
	}

	upstream := client.NewClient(searchApiUrl, &http.Client{Timeout: 30 * time.Second}, logger.Named("client"))

	ws := &server.WebServer{
		Searcher:  upstream,
		Resources: upstream,
		Lists:     upstream,
		Logger:    logger.Named("server"),
		Secret:    secret,
		Options: search.Options{
			Delay:    time.Duration(envInt("DEBOUNCE_MS", 500)) * time.Millisecond,
			PageSize: envInt("PAGE_SIZE", 10),
			Scope:    search.LearningResources,
		},
	}

	if redisUrl, ok := os.LookupEnv("REDIS_URL"); ok {
		ws.Cache = server.NewCache(redisUrl, os.Getenv("REDIS_PASSWORD"), envInt("REDIS_DB", 0))
		logger.Info("using redis cache", zap.String("addr", redisUrl))
	}

	var conn *amqp.Connection
	if rabbitUrl, ok := os.LookupEnv("RABBIT_URL"); ok {
		trk, err := tracking.NewRabbitTracking(rabbitUrl, country, logger.Named("tracking"))
		if err != nil {
			logger.Warn("tracking disabled", zap.Error(err))
		} else {
			ws.Tracking = trk
		}
		conn, err = amqp.Dial(rabbitUrl)
		if err != nil {
			logger.Warn("not listening for resource changes", zap.Error(err))
		} else if err = ws.ListenForChanges(conn, country); err != nil {
			logger.Warn("failed to listen for resource changes", zap.Error(err))
		}
	}

	ws = server.NewWebServer(ws)

	stopPrune := make(chan struct{})
	go ws.Sessions.PruneEvery(time.Minute, 30*time.Minute, stopPrune)

	httpServer := common.NewServerWithTimeouts(&http.Server{
		Addr:    listenAddress,
		Handler: ws.Handler(),
	}, timeouts)

	common.RunServerWithShutdown(httpServer, logger, "discover", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			close(stopPrune)
			ws.Close()
			return nil
		},
		func(ctx context.Context) error {
			if ws.Tracking != nil {
				return ws.Tracking.Close()
			}
			return nil
		},
		func(ctx context.Context) error {
			if conn != nil {
				return conn.Close()
			}
			return nil
		},
		func(ctx context.Context) error {
			if ws.Cache != nil {
				return ws.Cache.Close()
			}
			return nil
		},
	)
}
