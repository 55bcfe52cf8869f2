package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 支援 errors.Is / errors.As 鏈
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼，對應核心的錯誤分類
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidParameter = "INVALID_PARAMETER" // 400
	ErrCodeNotFound         = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError       = "INTERNAL_ERROR"       // 500
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE" // 502
	ErrCodeRequestTimeout      = "REQUEST_TIMEOUT"      // 408
)

// 預定義錯誤
var (
	ErrInvalidParameter = NewError(ErrCodeInvalidParameter, "參數無效", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)
	ErrInternalError    = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	// 外部資料儲存層無回應時直接回報，核心不重試也不代以過期資料
	ErrUpstreamUnavailable = NewError(ErrCodeUpstreamUnavailable, "資料儲存層暫時不可用", http.StatusBadGateway, nil)
)

// NewInvalidParameter 創建帶細節的參數錯誤
func NewInvalidParameter(format string, args ...interface{}) *CustomError {
	return NewError(ErrCodeInvalidParameter, fmt.Sprintf(format, args...), http.StatusBadRequest, nil)
}

// NewNotFound 創建帶細節的資源不存在錯誤
func NewNotFound(format string, args ...interface{}) *CustomError {
	return NewError(ErrCodeNotFound, fmt.Sprintf(format, args...), http.StatusNotFound, nil)
}

// NewUpstreamUnavailable 包裝儲存層失敗
func NewUpstreamUnavailable(err error) *CustomError {
	return NewError(ErrCodeUpstreamUnavailable, "資料儲存層暫時不可用", http.StatusBadGateway, err)
}

// hasCode 檢查錯誤鏈中是否帶有指定錯誤代碼
func hasCode(err error, code string) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// IsInvalidParameter 檢查是否為參數錯誤
func IsInvalidParameter(err error) bool {
	return hasCode(err, ErrCodeInvalidParameter)
}

// IsNotFound 檢查是否為資源不存在錯誤
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsUpstreamUnavailable 檢查是否為儲存層失敗
func IsUpstreamUnavailable(err error) bool {
	return hasCode(err, ErrCodeUpstreamUnavailable)
}

// HTTPStatus 取得錯誤對應的 HTTP 狀態碼，未分類的錯誤一律視為 500
func HTTPStatus(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Status != 0 {
		return ce.Status
	}
	return http.StatusInternalServerError
}

// ErrorCode 取得錯誤代碼，未分類的錯誤回傳 INTERNAL_ERROR
func ErrorCode(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Code != "" {
		return ce.Code
	}
	return ErrCodeInternalError
}
