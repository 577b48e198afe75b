package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OptionGroupRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Required  bool   `json:"required"`
	SortOrder int    `json:"sort_order"`
}

type OptionCreateRequest struct {
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
	SortOrder  int    `json:"sort_order"`
}

type OptionUpdateRequest struct {
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
	SortOrder  int    `json:"sort_order"`
	IsActive   bool   `json:"is_active"`
}

// オプショングループは商品にぶら下がり、オプションはグループにぶら下がる
type OptionHandler struct {
	uc *usecase.OptionUsecase
}

// DI
func NewOptionHandler(uc *usecase.OptionUsecase) *OptionHandler {
	return &OptionHandler{uc: uc}
}

func (h *OptionHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))

	admin.GET("/products/:id/option-groups", h.listGroups)
	admin.POST("/products/:id/option-groups", h.createGroup)
	admin.PATCH("/option-groups/:gid", h.updateGroup)
	admin.DELETE("/option-groups/:gid", h.deleteGroup)

	admin.POST("/option-groups/:gid/options", h.createOption)
	admin.PATCH("/options/:oid", h.updateOption)
	admin.DELETE("/options/:oid", h.deleteOption)
}

func (h *OptionHandler) listGroups(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListGroups(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OptionHandler) createGroup(c echo.Context) error {
	var req OptionGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.CreateGroup(c.Request().Context(), usecase.CreateOptionGroupInput{
		OwnerID:   ownerID,
		ProductID: c.Param("id"),
		Name:      req.Name,
		Type:      req.Type,
		Required:  req.Required,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OptionHandler) updateGroup(c echo.Context) error {
	var req OptionGroupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.UpdateGroup(c.Request().Context(), usecase.UpdateOptionGroupInput{
		OwnerID:   ownerID,
		GroupID:   c.Param("gid"),
		Name:      req.Name,
		Type:      req.Type,
		Required:  req.Required,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OptionHandler) deleteGroup(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteGroup(c.Request().Context(), ownerID, c.Param("gid")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *OptionHandler) createOption(c echo.Context) error {
	var req OptionCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.CreateOption(c.Request().Context(), usecase.CreateOptionInput{
		OwnerID:    ownerID,
		GroupID:    c.Param("gid"),
		Name:       req.Name,
		PriceDelta: req.PriceDelta,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OptionHandler) updateOption(c echo.Context) error {
	var req OptionUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.UpdateOption(c.Request().Context(), usecase.UpdateOptionInput{
		OwnerID:    ownerID,
		OptionID:   c.Param("oid"),
		Name:       req.Name,
		PriceDelta: req.PriceDelta,
		SortOrder:  req.SortOrder,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OptionHandler) deleteOption(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteOption(c.Request().Context(), ownerID, c.Param("oid")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
