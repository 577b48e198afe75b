package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type TenantCreateRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	WhatsappPhone string `json:"whatsapp_phone"`
}

type TenantSettingsRequest struct {
	Name            string `json:"name"`
	WhatsappPhone   string `json:"whatsapp_phone"`
	Address         string `json:"address"`
	DeliveryFee     int64  `json:"delivery_fee"`
	PickupEnabled   bool   `json:"pickup_enabled"`
	DeliveryEnabled bool   `json:"delivery_enabled"`
	LeadTimeText    string `json:"lead_time_text"`
	LogoURL         string `json:"logo_url"`
	PrimaryColor    string `json:"primary_color"`
}

// /admin/tenants 店舗の作成と設定
type TenantHandler struct {
	uc *usecase.TenantUsecase
}

// DI
func NewTenantHandler(uc *usecase.TenantUsecase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// adminを登録
func (h *TenantHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))

	admin.POST("/tenants", h.create)
	admin.GET("/tenants/me", h.me)
	admin.PATCH("/tenants/me", h.updateSettings)
	admin.GET("/tenants/me/qr", h.qr)
}

func (h *TenantHandler) create(c echo.Context) error {
	var req TenantCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.CreateTenant(c.Request().Context(), usecase.CreateTenantInput{
		OwnerID:       ownerID,
		Name:          req.Name,
		Type:          req.Type,
		WhatsappPhone: req.WhatsappPhone,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *TenantHandler) me(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMyTenant(c.Request().Context(), ownerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *TenantHandler) updateSettings(c echo.Context) error {
	var req TenantSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.UpdateSettings(c.Request().Context(), usecase.UpdateSettingsInput{
		OwnerID:         ownerID,
		Name:            req.Name,
		WhatsappPhone:   req.WhatsappPhone,
		Address:         req.Address,
		DeliveryFee:     req.DeliveryFee,
		PickupEnabled:   req.PickupEnabled,
		DeliveryEnabled: req.DeliveryEnabled,
		LeadTimeText:    req.LeadTimeText,
		LogoURL:         req.LogoURL,
		PrimaryColor:    req.PrimaryColor,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *TenantHandler) qr(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.QRInfo(c.Request().Context(), ownerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
