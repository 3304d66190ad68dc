package main

import (
	"context"

	"Hey_Blog/internal/config"
	"Hey_Blog/internal/model"
	"Hey_Blog/internal/pkg"
	"Hey_Blog/internal/repository/mysql"
	"Hey_Blog/internal/repository/redis"
	"Hey_Blog/internal/router"
	"Hey_Blog/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := pkg.InitLogger(cfg.Development()); err != nil {
		panic(err)
	}
	defer pkg.SyncLogger()

	if err := mysql.InitDB(cfg.DSN); err != nil {
		pkg.Log.Fatal("database init failed", zap.Error(err))
	}
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		pkg.Log.Fatal("redis init failed", zap.Error(err))
	}
	defer redis.Close()

	if err := mysql.DB.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Follow{},
		&model.FollowOutbox{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		pkg.Log.Fatal("migration failed", zap.Error(err))
	}

	// seeding is idempotent and safe to run on every boot
	roles := &mysql.RoleRepository{DB: mysql.DB}
	if err := roles.Seed(context.Background()); err != nil {
		pkg.Log.Fatal("role seeding failed", zap.Error(err))
	}

	producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(mysql.DB, producer).Run(ctx)

	tokens := pkg.NewTokenService(cfg.SecretKey)

	r := router.InitRouter(cfg, mysql.DB, tokens)
	if err := r.Run(":" + cfg.Port); err != nil {
		pkg.Log.Fatal("server stopped", zap.Error(err))
	}
}
