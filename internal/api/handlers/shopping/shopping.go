package shopping

import (
	"net/http"

	shoppingService "recipe-recommender/internal/core/shopping"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateShoppingListRequest 購物清單產生請求
type GenerateShoppingListRequest struct {
	UserID       string   `json:"user_id" binding:"required"`
	RecipeIDs    []string `json:"recipe_ids"`
	CollectionID string   `json:"collection_id"`
	Name         string   `json:"name"`
}

// SetItemCheckedRequest 勾選購物清單項目請求
type SetItemCheckedRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// Handler 購物清單處理程序
type Handler struct {
	service *shoppingService.Service
}

// NewHandler 創建新的購物清單處理程序
func NewHandler(service *shoppingService.Service) *Handler {
	return &Handler{service: service}
}

func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

func respondError(c *gin.Context, requestID string, err error) {
	common.LogWarn("請求處理失敗",
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("code", common.ErrorCode(err)),
		zap.Error(err),
	)
	c.JSON(common.HTTPStatus(err), common.ErrorResponse{
		Code:    common.ErrorCode(err),
		Message: err.Error(),
	})
}

// HandleGenerate 從食譜或收藏集產生合併後的購物清單
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req GenerateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, requestID, common.NewInvalidParameter("invalid request body: %v", err))
		return
	}

	list, err := h.service.Generate(c.Request.Context(), req.UserID, shoppingService.GenerateRequest{
		RecipeIDs:    req.RecipeIDs,
		CollectionID: req.CollectionID,
		Name:         req.Name,
	})
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	common.LogInfo("購物清單已產生",
		zap.String("request_id", requestID),
		zap.String("user_id", req.UserID),
		zap.String("list_id", list.ID),
		zap.Int("item_count", len(list.Items)),
	)
	c.JSON(http.StatusCreated, list)
}

// HandleGet 取得單一購物清單
func (h *Handler) HandleGet(c *gin.Context) {
	requestID := ensureRequestID(c)

	list, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// HandleList 取得使用者的所有購物清單
func (h *Handler) HandleList(c *gin.Context) {
	requestID := ensureRequestID(c)

	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, requestID, common.NewInvalidParameter("user_id is required"))
		return
	}

	lists, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

// HandleSetItemChecked 更新購物清單項目的勾選狀態
func (h *Handler) HandleSetItemChecked(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req SetItemCheckedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, requestID, common.NewInvalidParameter("invalid request body: %v", err))
		return
	}

	if err := h.service.SetItemChecked(c.Request.Context(), c.Param("id"), c.Param("name"), *req.Checked); err != nil {
		respondError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
