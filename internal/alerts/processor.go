package alerts

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/fixia-ar/fixia/internal/config"
	"github.com/fixia-ar/fixia/internal/logger"
)

var (
	client *asynq.Client
	server *asynq.Server
)

// Init starts the asynq worker and initializes the shared client. The worker
// runs in-process: this service is single-deployable.
func Init(cfg *config.Config) {
	opts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	client = asynq.NewClient(opts)

	ConfigureMailer(cfg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskProposalReceived, handleEmailTask)
	mux.HandleFunc(TaskProposalAccepted, handleEmailTask)
	mux.HandleFunc(TaskProposalRejected, handleEmailTask)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails": 10,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			logger.L.Warn("asynq server stopped", zap.Error(err))
		}
	}()

	logger.L.Info("alerts worker started", zap.String("redis", cfg.RedisAddr))
}

// Close releases the client and stops the worker.
func Close() {
	if client != nil {
		_ = client.Close()
	}
	if server != nil {
		server.Shutdown()
	}
}

func ensureClient() *asynq.Client {
	if client == nil {
		panic("alerts: Init not called")
	}
	return client
}

func handleEmailTask(_ context.Context, t *asynq.Task) error {
	var p EmailTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := SendEmail(p.Envelope.To, p.Envelope.Subject, p.Envelope.Body); err != nil {
		logger.L.Warn("notification email send failed",
			zap.String("task", t.Type()),
			zap.String("user_id", p.UserID),
			zap.Error(err),
		)
		return err
	}
	logger.L.Info("notification email sent",
		zap.String("task", t.Type()),
		zap.String("user_id", p.UserID),
	)
	return nil
}
