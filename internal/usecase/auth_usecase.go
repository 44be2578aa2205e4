package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// アクセストークンの発行だけを切り出す（実装はcmd/apiで注入）
type TokenIssuer interface {
	Issue(userID string, isVendor bool, now time.Time) (token string, expiresAt time.Time, err error)
}

type AuthUsecase struct {
	users  repo.UserRepository
	issuer TokenIssuer
}

func NewAuthUsecase(users repo.UserRepository, issuer TokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, issuer: issuer}
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if err := validatePassword(in.Password); err != nil {
		return model.User{}, err
	}
	if in.Password != in.ConfirmPassword {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password mismatch")
	}

	//email重複チェック
	_, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "email already taken")
	}
	if err != repo.ErrNotFound {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := time.Now()
	created, err := u.users.Create(ctx, model.User{
		Email:        email,
		PasswordHash: string(hash),
		IsCustomer:   true,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.IsVendor, time.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{Token: token, ExpiresAt: expiresAt}, nil
}

// 8文字以上・大文字・小文字・数字を必須にする
func validatePassword(pw string) error {
	if len(pw) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, c := range pw {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	if !hasUpper {
		return NewHTTPError(http.StatusBadRequest, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		return NewHTTPError(http.StatusBadRequest, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return NewHTTPError(http.StatusBadRequest, "password must contain at least one number")
	}
	return nil
}
