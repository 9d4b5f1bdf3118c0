// Package server exposes the tracker over HTTP: the Meta webhook endpoints
// plus token-protected job triggers for the scheduled prompt and report.
package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/varadha/habitd/internal/service"
	"github.com/varadha/habitd/internal/whatsapp"
)

// Config carries the server's listen address and shared secrets.
type Config struct {
	Addr string

	// VerifyToken is echoed during Meta's webhook verification handshake.
	VerifyToken string
	// AppSecret signs webhook payloads (X-Hub-Signature-256).
	AppSecret string
	// JobToken protects the /jobs endpoints invoked by the scheduler.
	JobToken string
	// AllowedSender is the one phone number whose messages are processed.
	// Empty means any sender.
	AllowedSender string
}

// Tracker is the slice of the application the HTTP layer drives.
type Tracker interface {
	ProcessMessage(ctx context.Context, text string) string
	DailyPrompt(ctx context.Context) error
	WeeklyReport(ctx context.Context) error
}

// Deduper remembers processed webhook deliveries.
type Deduper interface {
	RecordInbound(ctx context.Context, messageID, sender, body string, receivedAt time.Time) (bool, error)
}

// Server handles webhook traffic and job triggers.
type Server struct {
	cfg      Config
	tracker  Tracker
	dedupe   Deduper
	notifier service.Notifier
	logger   *slog.Logger
}

// New wires a Server from its collaborators.
func New(cfg Config, tracker Tracker, dedupe Deduper, notifier service.Notifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, tracker: tracker, dedupe: dedupe, notifier: notifier, logger: logger}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/webhook", s.verifyWebhook)
	r.POST("/webhook", s.receiveWebhook)

	jobs := r.Group("/jobs", s.requireJobToken)
	{
		jobs.POST("/daily-prompt", s.runJob("daily prompt", s.tracker.DailyPrompt))
		jobs.POST("/weekly-report", s.runJob("weekly report", s.tracker.WeeklyReport))
	}

	return r
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	return s.Router().Run(s.cfg.Addr)
}

func (s *Server) verifyWebhook(c *gin.Context) {
	challenge, ok := whatsapp.VerifyChallenge(
		c.Query("hub.mode"),
		c.Query("hub.verify_token"),
		c.Query("hub.challenge"),
		s.cfg.VerifyToken,
	)
	if !ok {
		c.String(http.StatusForbidden, "verification failed")
		return
	}
	c.String(http.StatusOK, challenge)
}

// receiveWebhook always answers 200 once the signature checks out; any
// other status makes Meta retry and eventually disable the subscription.
func (s *Server) receiveWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}

	if !whatsapp.ValidateSignature(body, c.GetHeader("X-Hub-Signature-256"), s.cfg.AppSecret) {
		s.logger.Warn("webhook signature rejected")
		c.String(http.StatusForbidden, "invalid signature")
		return
	}

	msg, ok := whatsapp.ExtractMessage(body)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if s.cfg.AllowedSender != "" && msg.From != s.cfg.AllowedSender {
		s.logger.Warn("message from unknown sender dropped", "from", msg.From)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	ctx := c.Request.Context()
	first, err := s.dedupe.RecordInbound(ctx, msg.MessageID, msg.From, msg.Text, time.Now())
	if err != nil {
		// Prefer a possible duplicate reply over dropping the message.
		s.logger.Error("recording inbound message", "error", err)
	} else if !first {
		s.logger.Info("duplicate delivery skipped", "message_id", msg.MessageID)
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}

	reply := s.tracker.ProcessMessage(ctx, msg.Text)
	if err := s.notifier.SendText(ctx, msg.From, reply); err != nil {
		s.logger.Error("sending reply", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

func (s *Server) requireJobToken(c *gin.Context) {
	if s.cfg.JobToken == "" || c.GetHeader("Authorization") != "Bearer "+s.cfg.JobToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) runJob(name string, job func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := job(c.Request.Context()); err != nil {
			s.logger.Error(name+" job failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "sent"})
	}
}
