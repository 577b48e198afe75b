package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RegisterRoutesに渡すhandler一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Tenant   *handler.TenantHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Option   *handler.OptionHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
}

// echoを組み立てて起動する
func Start(cfg config.Config, h Handlers, userRepo repository.UserRepository) error {
	e := New(cfg, h, userRepo)
	return e.Start(":" + cfg.Port)
}

// テストから直接使えるように組み立てと起動を分ける
func New(cfg config.Config, h Handlers, userRepo repository.UserRepository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Device-ID"},
		AllowCredentials: true,
	}))

	//公開側
	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)

	//認証
	h.Auth.RegisterRoutes(e)

	//管理側（AuthJWT + TokenVersionGuard）
	h.Tenant.RegisterRoutes(e, cfg, userRepo)
	h.Category.RegisterRoutes(e, cfg, userRepo)
	h.Product.RegisterRoutes(e, cfg, userRepo)
	h.Option.RegisterRoutes(e, cfg, userRepo)

	return e
}
