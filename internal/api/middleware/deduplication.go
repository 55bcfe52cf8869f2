package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"
)

// generatePayload 去重只關心產生請求的使用者與來源欄位
type generatePayload struct {
	UserID       string   `json:"user_id"`
	RecipeIDs    []string `json:"recipe_ids"`
	CollectionID string   `json:"collection_id"`
	Name         string   `json:"name"`
}

// fingerprint 同一使用者對同一組來源的提交視為同一請求
// recipe_ids 先排序，同一組食譜換個順序送仍然命中
func (p generatePayload) fingerprint() string {
	ids := append([]string(nil), p.RecipeIDs...)
	sort.Strings(ids)
	raw := strings.Join([]string{p.UserID, p.CollectionID, p.Name, strings.Join(ids, ",")}, "|")
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

var (
	// 最近的產生請求，用於去重
	recentGenerations = struct {
		sync.Mutex
		seen map[string]time.Time
	}{
		seen: make(map[string]time.Time),
	}

	// 啟動自動清理 goroutine（只啟動一次）
	cleanupOnce sync.Once
)

// 啟動自動清理 goroutine
func startDeduplicationCleanup(window time.Duration) {
	cleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				now := time.Now()
				recentGenerations.Lock()
				for k, t := range recentGenerations.seen {
					if now.Sub(t) > 10*window {
						delete(recentGenerations.seen, k)
					}
				}
				recentGenerations.Unlock()
			}
		}()
	})
}

// Deduplication 購物清單產生的去重中間件
// dedup_window 內同一使用者對同一組來源的重複提交直接回 429，
// 避免連點產生多份相同的清單
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	window := 1 * time.Second
	if cfg != nil && cfg.DedupWindow > 0 {
		window = cfg.DedupWindow
	}
	startDeduplicationCleanup(window)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.LogError("Failed to read request body", zap.Error(err))
			c.Next()
			return
		}
		// 處理程序還要再讀一次
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var payload generatePayload
		if err := json.Unmarshal(body, &payload); err != nil || payload.UserID == "" {
			// 格式錯誤交給處理程序的綁定驗證回報
			c.Next()
			return
		}

		key := payload.fingerprint()
		now := time.Now()

		recentGenerations.Lock()
		last, seen := recentGenerations.seen[key]
		if seen && now.Sub(last) <= window {
			recentGenerations.Unlock()
			common.LogWarn("重複的購物清單產生請求",
				zap.String("user_id", payload.UserID),
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusTooManyRequests, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: "duplicate generation request, retry later",
			})
			c.Abort()
			return
		}
		recentGenerations.seen[key] = now
		recentGenerations.Unlock()

		c.Next()
	}
}
