package services

import (
	"context"
	"log"

	appConfig "github.com/kendall-kelly/bakery-api/config"
	"github.com/kendall-kelly/bakery-api/repository"
	"github.com/kendall-kelly/bakery-api/schedule"
	"github.com/kendall-kelly/bakery-api/seed"
	"github.com/kendall-kelly/bakery-api/storage"
	"github.com/kendall-kelly/bakery-api/utils"
)

// InitServices builds every domain service over store and registers them
// as the global instances used by the controllers
func InitServices(ctx context.Context, cfg *appConfig.Config, store storage.Store) error {
	SetStore(store)

	scheduler := schedule.New(cfg.Location())
	pickup := InitPickupService(repository.NewBlockedDates(store), scheduler)

	var sms SMSSender
	if cfg.SMSEnabled() {
		sms = NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	} else {
		log.Printf("Twilio credentials not configured, SMS notifications are disabled")
	}
	var mailer Mailer
	if cfg.MailEnabled() {
		mailer = NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPUsername)
	}
	notifier := NewNotificationService(sms, mailer, cfg.StoreOwnerPhone, cfg.StoreOwnerEmail, cfg.Location())

	InitOrderService(repository.NewOrderRepository(store), pickup, notifier)
	InitProductService(repository.NewProductRepository(store), seed.DefaultProducts)
	InitChangelogService(repository.NewUpdateRepository(store))
	InitAdminService(cfg.AdminPassword, cfg.AdminTokenSecret)

	var images ImageService
	if cfg.S3Enabled() {
		s3Service := GetS3Service()
		if s3Service == nil {
			var err error
			if s3Service, err = InitS3Service(ctx, cfg); err != nil {
				return err
			}
		}
		images = InitImageService(s3Service)
	} else {
		images = InitLocalImageService(utils.UploadDir)
	}
	InitGalleryService(repository.NewGalleryRepository(store), images)

	return nil
}
