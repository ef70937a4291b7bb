package main

import (
	"context"
	"log"

	"reddigo/internal/model"
	"reddigo/internal/pkg"
	"reddigo/internal/repository/mysql"
	"reddigo/internal/repository/redis"
	"reddigo/internal/router"
	"reddigo/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 加载 .env，没有就用系统环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading env vars from system")
	}

	if err := pkg.InitLogger(); err != nil {
		log.Fatal(err)
	}
	defer pkg.Logger.Sync()

	pkg.InitJWT()

	dsn := pkg.Getenv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/reddigo?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		pkg.Logger.Fatal("mysql init failed", zap.Error(err))
	}

	if err := redis.Init(
		pkg.Getenv("REDIS_ADDR", "127.0.0.1:6379"),
		pkg.Getenv("REDIS_PASSWORD", ""),
		pkg.GetenvInt("REDIS_DB", 0),
	); err != nil {
		pkg.Logger.Fatal("redis init failed", zap.Error(err))
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Post{},
		&model.Comment{},
		&model.Vote{},
		&model.VoteOutbox{},
		&model.SavedPost{},
		&model.SavedComment{},
		&model.Image{},
	); err != nil {
		pkg.Logger.Fatal("auto migrate failed", zap.Error(err))
	}

	// kafka 未配置时不启动派发器，投票事件留在 outbox 表里
	if brokers := pkg.GetenvList("KAFKA_BROKERS"); len(brokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: brokers,
			Topic:   pkg.Getenv("KAFKA_VOTE_TOPIC", "vote-events"),
		})
		if err != nil {
			pkg.Logger.Fatal("kafka producer init failed", zap.Error(err))
		}
		defer producer.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go service.NewDispatchService(producer).Run(ctx)
	}

	emailCfg := pkg.SMTPConfig{
		Host:     pkg.Getenv("SMTP_HOST", "127.0.0.1"),
		Port:     pkg.GetenvInt("SMTP_PORT", 587),
		Username: pkg.Getenv("SMTP_USERNAME", ""),
		Password: pkg.Getenv("SMTP_PASSWORD", ""),
		From:     pkg.Getenv("SMTP_FROM", "NoReply <no-reply@example.com>"),
	}

	r := router.InitRouter(emailCfg, pkg.Getenv("IMAGE_DIR", "./data/images"))

	addr := ":" + pkg.Getenv("PORT", "8080")
	pkg.Logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		pkg.Logger.Fatal("server exited", zap.Error(err))
	}
}
