package main

import (
	"context"
	"errors"
	"log"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"roombooking/internal/config"
	"roombooking/internal/database"
	"roombooking/internal/domain"
	jwtsvc "roombooking/internal/pkg/jwt"
	applog "roombooking/internal/pkg/logger"
	"roombooking/internal/repository"
)

type seedUser struct {
	email    string
	name     string
	password string
	role     domain.UserRole
}

var users = []seedUser{
	{email: "admin@roombooking.local", name: "Administrator", password: "admin123", role: domain.RoleAdmin},
	{email: "alice@roombooking.local", name: "Alice", password: "member123", role: domain.RoleMember},
	{email: "bob@roombooking.local", name: "Bob", password: "member123", role: domain.RoleMember},
}

var rooms = []domain.Room{
	{Code: "A-101", Name: "Aurora", Capacity: 4, Equipment: []string{"whiteboard", "tv"}},
	{Code: "A-102", Name: "Borealis", Capacity: 8, Equipment: []string{"projector", "whiteboard", "video-conference"}},
	{Code: "B-201", Name: "Cirrus", Capacity: 12, Equipment: []string{"projector", "speakers"}},
	{Code: "B-202", Name: "Drift", Capacity: 2},
	{Code: "C-301", Name: "Equinox", Capacity: 20, Equipment: []string{"stage", "microphone", "projector"}},
}

// Seeding is idempotent: existing users and rooms are left as they are.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := applog.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	logger.Info("creating users")
	for _, su := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			logger.Fatal("hash password failed", zap.Error(err))
		}
		u := &domain.User{
			Email:        su.email,
			Name:         su.name,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		err = userRepo.Create(ctx, u)
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			u, err = userRepo.GetByEmail(ctx, su.email)
			if err != nil {
				logger.Fatal("load existing user failed", zap.String("email", su.email), zap.Error(err))
			}
			logger.Info("user exists", zap.String("email", su.email))
		case err != nil:
			logger.Fatal("create user failed", zap.String("email", su.email), zap.Error(err))
		default:
			logger.Info("user created", zap.String("email", su.email), zap.String("role", string(su.role)))
		}

		token, err := j.GenerateToken(u.ID, string(u.Role))
		if err != nil {
			logger.Fatal("issue token failed", zap.Error(err))
		}
		logger.Info("dev token", zap.String("email", u.Email), zap.String("token", token))
	}

	logger.Info("creating rooms")
	for i := range rooms {
		room := rooms[i]
		err := roomRepo.Create(ctx, &room)
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			logger.Info("room exists", zap.String("code", room.Code))
		case err != nil:
			logger.Fatal("create room failed", zap.String("code", room.Code), zap.Error(err))
		default:
			logger.Info("room created", zap.String("code", room.Code), zap.Int64("id", room.ID))
		}
	}

	logger.Info("seed completed")
}
