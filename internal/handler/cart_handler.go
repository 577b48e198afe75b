package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartAddRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

// JSONの数値はfloatで受けてusecase側で整数化する
type CartQuantityRequest struct {
	Qty float64 `json:"qty"`
}

// /t/:slug/cart 端末単位のカート操作（認証なし）
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/t/:slug/cart", h.get)
	e.POST("/t/:slug/cart/items", h.addItem)
	e.PATCH("/t/:slug/cart/items/:productId", h.setQuantity)
	e.DELETE("/t/:slug/cart/items/:productId", h.removeItem)
	e.DELETE("/t/:slug/cart", h.clear)
}

func (h *CartHandler) get(c echo.Context) error {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "X-Device-ID header is required"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), deviceID, c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "X-Device-ID header is required"})
	}

	var req CartAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), deviceID, c.Param("slug"), usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) setQuantity(c echo.Context) error {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "X-Device-ID header is required"})
	}

	var req CartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SetQuantity(c.Request().Context(), deviceID, c.Param("slug"), c.Param("productId"), req.Qty)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "X-Device-ID header is required"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), deviceID, c.Param("slug"), c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "X-Device-ID header is required"})
	}

	out, err := h.uc.Clear(c.Request().Context(), deviceID, c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
