package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type VendorHandler struct {
	uc *usecase.VendorUsecase
}

func NewVendorHandler(uc *usecase.VendorUsecase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

type BecomeVendorRequest struct {
	BrandName  string `json:"brand_name"`
	BrandEmail string `json:"brand_email"`
}

func (h *VendorHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/vendors")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("", h.becomeVendor)
}

func (h *VendorHandler) becomeVendor(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req BecomeVendorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BecomeVendor(c.Request().Context(), userID, usecase.BecomeVendorInput{
		BrandName:  req.BrandName,
		BrandEmail: req.BrandEmail,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
