package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers は起動時に配線済みの全ハンドラをまとめて受け取る
type Handlers struct {
	Auth    *handler.AuthHandler
	Vendor  *handler.VendorHandler
	Product *handler.ProductHandler
	Address *handler.AddressHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Payment *handler.PaymentHandler
}

// New はルーティング済みのechoを返す
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())

	h.Auth.RegisterRoutes(e)
	h.Vendor.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Address.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Payment.RegisterRoutes(e, cfg)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
