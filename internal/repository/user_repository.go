package repository

import (
	"context"

	"app/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, userID string) (model.User, error)

	//is_vendorを立てて更新後のユーザーを返す。
	//ハンドラ内でのフラグ直接書き換えはしない
	PromoteToVendor(ctx context.Context, userID string) (model.User, error)
}
