package database

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/campusworks/unihire/configs"
	"github.com/campusworks/unihire/models"
	"github.com/campusworks/unihire/repository"
)

var DB *gorm.DB

func ConnectDB(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DB.DSN), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	log.Info().Msg("database connected")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.HireRequest{},
		&models.Contract{},
		&models.ContractSignature{},
		&models.Order{},
		&models.WalletEntry{},
		&models.Review{},
		&models.Notification{},
		&models.ChatRoom{},
		&models.Message{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	if err := repository.NewStore(DB).EnsureOpenHireIndexes(); err != nil {
		log.Fatal().Err(err).Msg("failed to create hire uniqueness indexes")
	}
	log.Info().Msg("database migration successful")
}

func SeedAdmin(cfg *config.Config) {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Warn().Msg("admin seed skipped, ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", cfg.Admin.Email).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to check for admin user")
	}
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin := models.User{
		FullName:   cfg.Admin.FullName,
		Email:      cfg.Admin.Email,
		Password:   string(hashed),
		Role:       models.RoleAdmin,
		IsVerified: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	log.Info().Str("email", admin.Email).Msg("admin user seeded")
}
