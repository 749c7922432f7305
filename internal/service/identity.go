package service

import (
	"context"
	"fmt"

	"Buddy_Community/internal/model"
	"Buddy_Community/internal/pkg"
)

// IdentityResolver 令牌 -> 玩家，任何一步失败都拒绝
type IdentityResolver struct {
	users  UserStore
	tokens TokenStore // 可为空，不启用吊销
}

func NewIdentityResolver(users UserStore, tokens TokenStore) *IdentityResolver {
	return &IdentityResolver{users: users, tokens: tokens}
}

func (r *IdentityResolver) Resolve(ctx context.Context, credential string) (*model.User, error) {
	claims, err := pkg.ParseAccess(credential)
	if err != nil {
		return nil, pkg.ErrInvalidCredential
	}
	if r.tokens != nil {
		revoked, err := r.tokens.IsRevoked(ctx, credential)
		if err != nil {
			return nil, fmt.Errorf("check revoked token: %w", err)
		}
		if revoked {
			return nil, pkg.ErrInvalidCredential
		}
	}
	user, err := r.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		return nil, pkg.ErrUnknownUser
	}
	return user, nil
}

// Revoke 令牌加入吊销名单直到自然过期
func (r *IdentityResolver) Revoke(ctx context.Context, credential string) error {
	claims, err := pkg.ParseAccess(credential)
	if err != nil {
		return pkg.ErrInvalidCredential
	}
	if r.tokens == nil {
		return nil
	}
	return r.tokens.Revoke(ctx, credential, pkg.TTLOf(claims))
}
