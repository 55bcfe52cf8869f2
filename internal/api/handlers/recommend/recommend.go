package recommend

import (
	"net/http"
	"strconv"

	recommendService "recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 查詢參數預設值
const (
	defaultLimit        = 10
	defaultTrendingDays = 7
	defaultSimilarLimit = 5
)

// Handler 推薦處理程序
type Handler struct {
	service *recommendService.Service
}

// NewHandler 創建新的推薦處理程序
func NewHandler(service *recommendService.Service) *Handler {
	return &Handler{service: service}
}

// ensureRequestID 取得或補上請求 ID
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// queryInt 解析整數查詢參數，缺少時用預設值
func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// respondError 把核心錯誤轉成 API 錯誤響應
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

// HandleRecommendations 回傳個人化推薦清單
func (h *Handler) HandleRecommendations(c *gin.Context) {
	requestID := ensureRequestID(c)

	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, requestID, common.NewInvalidParameter("user_id is required"))
		return
	}

	limit, ok := queryInt(c, "limit", defaultLimit)
	if !ok {
		respondError(c, requestID, common.NewInvalidParameter("limit must be an integer"))
		return
	}
	maxTime, ok := queryInt(c, "max_time", 0)
	if !ok {
		respondError(c, requestID, common.NewInvalidParameter("max_time must be an integer"))
		return
	}

	filters := common.RecipeFilters{
		Cuisine:    c.Query("cuisine"),
		Difficulty: c.Query("difficulty"),
		MaxTime:    maxTime,
	}

	results, err := h.service.Recommend(c.Request.Context(), userID, limit, filters)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	common.LogInfo("推薦請求完成",
		zap.String("request_id", requestID),
		zap.String("user_id", userID),
		zap.Int("count", len(results)),
	)
	c.JSON(http.StatusOK, gin.H{"recommendations": results})
}

// HandleTrending 回傳時間窗內的熱門食譜
func (h *Handler) HandleTrending(c *gin.Context) {
	requestID := ensureRequestID(c)

	days, ok := queryInt(c, "days", defaultTrendingDays)
	if !ok {
		respondError(c, requestID, common.NewInvalidParameter("days must be an integer"))
		return
	}
	limit, ok := queryInt(c, "limit", defaultLimit)
	if !ok {
		respondError(c, requestID, common.NewInvalidParameter("limit must be an integer"))
		return
	}

	results, err := h.service.Trending(c.Request.Context(), days, limit)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": results, "days": days})
}

// HandleSimilar 回傳與指定食譜相近的食譜
func (h *Handler) HandleSimilar(c *gin.Context) {
	requestID := ensureRequestID(c)

	recipeID := c.Param("id")
	limit, ok := queryInt(c, "limit", defaultSimilarLimit)
	if !ok {
		respondError(c, requestID, common.NewInvalidParameter("limit must be an integer"))
		return
	}

	results, err := h.service.Similar(c.Request.Context(), recipeID, limit)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": results})
}

// HandleSummary 回傳使用者的推薦因子摘要
func (h *Handler) HandleSummary(c *gin.Context) {
	requestID := ensureRequestID(c)

	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, requestID, common.NewInvalidParameter("user_id is required"))
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
