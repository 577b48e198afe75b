package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CheckoutPreviewRequest struct {
	CustomerName string `json:"customer_name"`
	Fulfillment  string `json:"fulfillment"`
	Address      string `json:"address"`
	Note         string `json:"note"`
}

// /t/:slug/checkout/preview 注文メッセージとwa.meリンクを返す
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/t/:slug/checkout/preview", h.preview)
}

func (h *CheckoutHandler) preview(c echo.Context) error {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "X-Device-ID header is required"})
	}

	var req CheckoutPreviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Preview(c.Request().Context(), deviceID, c.Param("slug"), usecase.CheckoutPreviewInput{
		CustomerName: req.CustomerName,
		Fulfillment:  req.Fulfillment,
		Address:      req.Address,
		Note:         req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
