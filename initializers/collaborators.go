package initializers

import (
	"context"
	"log"

	"github.com/Kariqs/amexan-store/events"
	"github.com/Kariqs/amexan-store/services"
	"github.com/Kariqs/amexan-store/session"
	"github.com/Kariqs/amexan-store/utils"
)

// Collaborators used by the services. Tests replace them with fakes.
var (
	Scratch  services.ScratchStore
	Payments services.PaymentGateway
	Notifier services.Notifier
	Events   services.EventPublisher
	Uploader services.ImageUploader
)

type closer interface {
	Close() error
}

var closers []closer

// SetupCollaborators picks an implementation for every collaborator based
// on what is configured. Call after ConnectToRedis.
func SetupCollaborators() {
	if Redis != nil {
		Scratch = session.NewRedisStore(Redis)
	} else {
		Scratch = session.NewMemoryStore()
	}

	if Config.PesapalConsumerKey != "" && Config.PesapalConsumerSecret != "" {
		Payments = utils.NewPesapalGateway(utils.PesapalConfig{
			BaseURL:        Config.PesapalURL,
			ConsumerKey:    Config.PesapalConsumerKey,
			ConsumerSecret: Config.PesapalConsumerSecret,
			NotificationID: Config.PesapalNotificationID,
			CallbackURL:    Config.PesapalCallbackURL,
		})
	} else {
		log.Println("Pesapal credentials not set, payments are recorded as pending")
		Payments = utils.ManualGateway{}
	}

	Notifier = utils.NewSMTPMailer(utils.SMTPConfig{
		From:        Config.SMTPFrom,
		Password:    Config.SMTPPassword,
		Host:        Config.SMTPHost,
		Address:     Config.SMTPAddress,
		TemplateDir: Config.TemplateDir,
		LogoURL:     Config.LogoURL,
	})

	if len(Config.KafkaBrokers) > 0 {
		producer := events.NewProducer(Config.KafkaBrokers, Config.KafkaTopic)
		closers = append(closers, producer)
		Events = producer
	} else {
		Events = events.Noop{}
	}

	if Config.S3Bucket != "" {
		uploader, err := utils.NewS3Uploader(context.Background(), Config.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to configure S3: %v", err)
		}
		Uploader = uploader
	}
}

// SeedAdmin creates the bootstrap admin account when configured.
func SeedAdmin() {
	if Config.AdminEmail == "" || Config.AdminPassword == "" {
		return
	}
	err := services.NewCustomerService(DB).EnsureAdmin(context.Background(), Config.AdminEmail, Config.AdminPhone, Config.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
}

func Close() {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Println("Close error:", err)
		}
	}
	if Redis != nil {
		_ = Redis.Close()
	}
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
