package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	accountapp "github.com/mohammadpnp/party-onboarding/internal/application/account"
	campaignapp "github.com/mohammadpnp/party-onboarding/internal/application/campaign"
	partyapp "github.com/mohammadpnp/party-onboarding/internal/application/party"
	"github.com/mohammadpnp/party-onboarding/internal/config"
	domainaccount "github.com/mohammadpnp/party-onboarding/internal/domain/account"
	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/auth"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/blob"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/db/models"
	infrafile "github.com/mohammadpnp/party-onboarding/internal/infrastructure/file"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/otpstore"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/repository"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/sms"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/spreadsheet"
	httpecho "github.com/mohammadpnp/party-onboarding/internal/interfaces/http/echo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the long-lived connections owned by main.
type Deps struct {
	DB     *gorm.DB
	Pool   *pgxpool.Pool
	Redis  redis.UniversalClient
	Blobs  domain.BlobStore
	Sender domainaccount.OTPSender
	Logger *zap.Logger
}

func NewHTTPServer(cfg config.Config, deps Deps) (*echo.Echo, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(cfg.UploadLimit))
	server.Use(httpecho.RequestLogger(logger))

	models.SetPasswordCost(cfg.Insert.BcryptCost)

	parties := repository.NewPartyQueryRepository(deps.DB, cfg.Insert.CodeAttempts)
	inserter := repository.NewPartyBulkInsertRepository(deps.Pool, cfg.Insert.CodeAttempts, cfg.Insert.HashWorkers)
	batches := repository.NewUploadBatchRepository(deps.DB)
	campaigns := repository.NewCampaignRepository(deps.DB)
	otps := otpstore.NewRedisStore(deps.Redis, otpstore.DefaultRetention)
	templates := infrafile.NewTemplateStore(cfg.SamplesDir)
	codec := spreadsheet.NewCodec()

	validator, err := partyapp.NewRowValidator(partyapp.ValidationRules{
		ContactPattern: cfg.Validation.ContactPattern,
		PincodeLength:  cfg.Validation.PincodeLength,
	}, parties, logger)
	if err != nil {
		return nil, fmt.Errorf("row validator: %w", err)
	}

	otpCfg := accountapp.OTPConfig{
		TTL:         time.Duration(cfg.OTP.TTLSeconds) * time.Second,
		MaxAttempts: cfg.OTP.MaxAttempts,
	}
	phones := accountapp.NewPhoneNormalizer(cfg.OTP.PhoneRegion)

	uploads := httpecho.NewUploadHandler(
		partyapp.NewBulkUpload(codec, validator, inserter, batches, logger),
		partyapp.NewExportFailedRows(codec),
		partyapp.NewGetSampleTemplate(templates),
		logger,
	)
	retailers := httpecho.NewRetailerHandler(
		partyapp.NewRegisterRetailer(otps, phones, parties, deps.Blobs, parties, logger),
		partyapp.NewListRetailers(parties),
		logger,
	)
	campaignHandler := httpecho.NewCampaignHandler(
		campaignapp.NewUpdateRetailerDates(campaigns),
		campaignapp.NewAssignEmployee(campaigns),
		campaignapp.NewEmployeeRetailerMapping(campaigns, parties, parties),
		campaignapp.NewAssignedEmployee(campaigns, parties),
		logger,
	)
	accounts := httpecho.NewAccountHandler(
		accountapp.NewRequestOTP(phones, otps, deps.Sender, otpCfg, logger),
		accountapp.NewVerifyOTP(phones, otps, otpCfg),
		accountapp.NewInitiatePasswordReset(phones, parties, otps, logger),
		accountapp.NewResetPassword(phones, parties, otps, otpCfg),
		logger,
	)

	server.Validator = httpecho.NewRequestValidator()
	httpecho.RegisterRoutes(server, httpecho.JWTAuth(auth.NewJWTManager(cfg.JWTSecret)), httpecho.Handlers{
		Uploads:   uploads,
		Retailers: retailers,
		Campaigns: campaignHandler,
		Accounts:  accounts,
	})

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server, nil
}

// NewBlobStore builds the object store selected by STORAGE_PROVIDER.
func NewBlobStore(ctx context.Context, cfg config.StorageConfig) (domain.BlobStore, error) {
	switch cfg.Provider {
	case config.StorageGCS:
		client, err := blob.NewGCSClient(ctx, cfg.GCSCredentials)
		if err != nil {
			return nil, err
		}
		return blob.NewGCSStore(client, cfg.GCSBucket), nil
	default:
		s3cfg := blob.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		}
		client, err := blob.NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		return blob.NewS3Store(client, s3cfg), nil
	}
}

// NewOTPSender returns the Twilio sender when credentials are set and a
// logging sender otherwise.
func NewOTPSender(cfg config.Config, logger *zap.Logger) (domainaccount.OTPSender, error) {
	if !cfg.Twilio.Enabled() {
		logger.Warn("twilio not configured, otp codes will be logged")
		return sms.NewLogSender(logger), nil
	}
	sender, err := sms.NewTwilioSender(sms.TwilioConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
		CodeTTL:    time.Duration(cfg.OTP.TTLSeconds) * time.Second,
	}, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return nil, err
	}
	return sender, nil
}
