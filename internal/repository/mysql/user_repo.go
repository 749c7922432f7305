package mysql

import (
	"context"
	"errors"

	"Buddy_Community/internal/model"

	"gorm.io/gorm"
)

// UserRepository 玩家表只读，写入归认证服务
type UserRepository struct {
	DB *gorm.DB
}

type AvatarRepository struct {
	DB *gorm.DB
}

// FindByID 不存在返回 nil, nil
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindImage 头像不存在时返回空串
func (r *AvatarRepository) FindImage(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	var avatar model.Avatar
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&avatar).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return avatar.Image, nil
}
