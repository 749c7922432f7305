package mysql

import (
	"fmt"
	"time"

	"Buddy_Community/internal/model"

	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 连接 MySQL，gorm 日志走 zap
func InitDB(dsn string, zl *zap.Logger, level string) error {
	gLogger := logger.New(
		zap.NewStdLog(zl.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  GormLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger:                                   gLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping mysql: %w", err)
	}
	DB = db
	return nil
}

// Setup 注册自定义关联表，migrate=true 时自动建表
func Setup(db *gorm.DB, migrate bool) error {
	joins := []struct {
		owner any
		field string
		join  any
	}{
		{&model.Community{}, "Members", &model.CommunityMember{}},
		{&model.Post{}, "Likes", &model.PostLike{}},
		{&model.Post{}, "Comments", &model.PostComment{}},
		{&model.Comment{}, "Likes", &model.CommentLike{}},
	}
	for _, j := range joins {
		if err := db.SetupJoinTable(j.owner, j.field, j.join); err != nil {
			return fmt.Errorf("setup join table %s: %w", j.field, err)
		}
	}
	if !migrate {
		return nil
	}
	return db.AutoMigrate(
		&model.User{},
		&model.Avatar{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.CommentLike{},
		&model.PostComment{},
		&model.CommunityOutbox{},
	)
}

// GormLogLevel info 级别下不打印每条 SQL
func GormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
