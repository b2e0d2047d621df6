package provider

import (
	"time"

	"github.com/moojpayam/api/internal/cache"
	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/models"
	"github.com/moojpayam/api/internal/queue"
	"github.com/moojpayam/api/internal/repository"
	"github.com/moojpayam/api/internal/service"
	"github.com/moojpayam/api/internal/sms"
)

// Container wires repositories and services once and hands them to the
// HTTP handlers and the worker.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	BlogRepo         repository.BlogRepository
	AnnouncementRepo repository.AnnouncementRepository
	PricingRepo      repository.PricingRepository
	ShortLinkRepo    repository.ShortLinkRepository
	AuditLogRepo     repository.AuditLogRepository

	// Services
	AuthService         *service.AuthService
	OtpService          *service.OtpService
	EmailService        *service.EmailService
	ContactService      *service.ContactService
	BlogService         *service.BlogService
	AnnouncementService *service.AnnouncementService
	PricingService      *service.PricingService
	ShortenerService    *service.ShortenerService
	UploadService       *service.UploadService
	AuditService        *service.AuditService
	CaptchaService      *service.CaptchaService
}

// NewContainer builds the dependency container.
func NewContainer(cfg *config.Config) (*Container, error) {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	db := models.DB

	blogRepo := repository.NewBlogRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	shortLinkRepo := repository.NewShortLinkRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		return nil, err
	}

	smsClient := sms.NewClient(sms.Options{
		Endpoint: cfg.Sms.Endpoint,
		Username: cfg.Sms.Username,
		Password: cfg.Sms.Password,
		Timeout:  time.Duration(cfg.Sms.TimeoutMS) * time.Millisecond,
	})
	otpService := service.NewOtpService(cfg, smsClient)
	emailService := service.NewEmailService(cfg.Email)

	uploadService, err := service.NewUploadService("./uploads", cfg.Upload)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:      cfg,
		QueueClient: queueClient,

		BlogRepo:         blogRepo,
		AnnouncementRepo: announcementRepo,
		PricingRepo:      pricingRepo,
		ShortLinkRepo:    shortLinkRepo,
		AuditLogRepo:     auditLogRepo,

		AuthService:         authService,
		OtpService:          otpService,
		EmailService:        emailService,
		ContactService:      service.NewContactService(emailService, otpService),
		BlogService:         service.NewBlogService(blogRepo),
		AnnouncementService: service.NewAnnouncementService(announcementRepo),
		PricingService:      service.NewPricingService(pricingRepo),
		ShortenerService:    service.NewShortenerService(shortLinkRepo, cfg),
		UploadService:       uploadService,
		AuditService:        service.NewAuditService(auditLogRepo, cfg),
		CaptchaService:      service.NewCaptchaService(cfg.Captcha),
	}, nil
}
