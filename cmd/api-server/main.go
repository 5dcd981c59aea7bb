package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"candidate-gateway/internal/campaign"
	"candidate-gateway/internal/candidate"
	"candidate-gateway/internal/common/airtable"
	awsclient "candidate-gateway/internal/common/aws"
	"candidate-gateway/internal/common/config"
	"candidate-gateway/internal/common/logger"
	"candidate-gateway/internal/common/mail"
	"candidate-gateway/internal/interest"
	"candidate-gateway/internal/server"
)

const throttleLimit = 30 // attempts per client per minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Sugar().Fatalf("failed to load config: %v", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("starting candidate gateway", map[string]interface{}{
		"environment": cfg.App.Environment,
		"port":        cfg.Server.Port,
	})

	ctx := context.Background()

	store := airtable.NewClient(cfg.Airtable.APIKey, cfg.Airtable.BaseID,
		config.GetDuration(cfg.Airtable.Timeout))

	campaigns := campaign.NewResolver(store, cfg.Airtable.CampaignsTableID, log)
	candidates := candidate.NewService(store, cfg.Airtable.ResolveCandidatesTable(), log)

	mailer, err := mail.NewFromConfig(ctx, cfg.Notifications)
	if err != nil {
		log.WithError(err).Error("failed to initialize email backend", nil)
		os.Exit(1)
	}
	if mailer == nil {
		log.Warn("no email backend configured, interest submissions will fail", nil)
	}

	var snsPublisher interest.SNSPublisher
	if cfg.Notifications.SNS.Enabled {
		snsClient, err := awsclient.NewSNSClient(ctx, cfg.Notifications.SNS.Region)
		if err != nil {
			log.WithError(err).Warn("failed to initialize SNS, admin texts disabled", nil)
		} else {
			snsPublisher = snsClient
		}
	}

	interestSvc := interest.NewService(interest.ServiceOptions{
		Store:             store,
		InterestTable:     cfg.Airtable.InterestTable,
		Mailer:            mailer,
		NotificationEmail: cfg.Notifications.NotificationEmail,
		SNSClient:         snsPublisher,
		SNSTopicARN:       cfg.Notifications.SNS.TopicARN,
		Logger:            log,
	})

	var throttle *server.Throttle
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, throttling disabled", nil)
		} else {
			throttle = server.NewThrottle(rdb, throttleLimit, time.Minute, log)
		}
	}

	srv := server.New(server.Options{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout:    config.GetDuration(cfg.Server.WriteTimeout),
		ShutdownTimeout: config.GetDuration(cfg.Server.ShutdownTimeout),
		Logger:          log,
		Campaigns:       campaigns,
		Candidates:      candidates,
		Interest:        interestSvc,
		Throttle:        throttle,
		StoreReady:      cfg.Airtable.StoreConfigured(),
	})

	if err := srv.Start(); err != nil {
		log.WithError(err).Error("server exited with error", nil)
		os.Exit(1)
	}
}
