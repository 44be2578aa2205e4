package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/gateway/paystack"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID string, isVendor bool, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":       userID,
		"is_vendor": isVendor,
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもよい（環境変数で渡せる）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := config.NewLogger(cfg)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vendor{},
		&model.ShippingAddress{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	vendorRepo := infraRepo.NewVendorGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部ゲートウェイ
	gw := paystack.NewClient(
		cfg.PaystackSecretKey,
		cfg.PaystackBaseURL,
		time.Duration(cfg.GatewayTimeoutSec)*time.Second,
		logger,
	)

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, issuer)
	vendorUC := usecase.NewVendorUsecase(userRepo, vendorRepo)
	productUC := usecase.NewProductUsecase(productRepo, vendorRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, addressRepo, cartRepo, cartRepo)
	paymentUC := usecase.NewPaymentUsecase(txManager, orderRepo, paymentRepo, userRepo, gw)

	//Handler生成
	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(authUC),
		Vendor:  handler.NewVendorHandler(vendorUC),
		Product: handler.NewProductHandler(productUC),
		Address: handler.NewAddressHandler(addressUC),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(orderUC),
		Payment: handler.NewPaymentHandler(paymentUC),
	}

	e := server.New(cfg, handlers)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Info().Str("addr", addr).Msg("server starting")
	if err := server.Start(e, addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
