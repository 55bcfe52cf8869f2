package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recipe-recommender/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// 編譯期介面檢查
var _ Store = (*RedisListStore)(nil)

const listKeyPrefix = "shopping_list:"
const userListsKeyPrefix = "user_shopping_lists:"

// RedisListStore 將購物清單持久化到 Redis 的裝飾層
// 讀取食譜與使用者資料仍委派給內層儲存層，只接管購物清單的寫入與讀回
// 這是新紀錄的持久化而不是快取：推薦與清單內容每次請求都重新計算
type RedisListStore struct {
	Store
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListStore 創建 Redis 購物清單儲存層
func NewRedisListStore(inner Store, addr string, ttl time.Duration) (*RedisListStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisListStore{
		Store:  inner,
		client: client,
		ttl:    ttl,
	}, nil
}

// Close 關閉 Redis 連線
func (s *RedisListStore) Close() error {
	return s.client.Close()
}

// PersistShoppingList 保存購物清單
func (s *RedisListStore) PersistShoppingList(ctx context.Context, list *common.ShoppingList) (string, error) {
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to marshal shopping list: %w", err)
	}

	if err := s.client.Set(ctx, listKeyPrefix+list.ID, data, s.ttl).Err(); err != nil {
		return "", common.NewUpstreamUnavailable(fmt.Errorf("persist_shopping_list: %w", err))
	}
	if list.UserID != "" {
		if err := s.client.SAdd(ctx, userListsKeyPrefix+list.UserID, list.ID).Err(); err != nil {
			return "", common.NewUpstreamUnavailable(fmt.Errorf("persist_shopping_list index: %w", err))
		}
	}
	return list.ID, nil
}

// GetShoppingList 讀取購物清單
func (s *RedisListStore) GetShoppingList(ctx context.Context, listID string) (*common.ShoppingList, error) {
	data, err := s.client.Get(ctx, listKeyPrefix+listID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.NewNotFound("shopping list not found: %s", listID)
		}
		return nil, common.NewUpstreamUnavailable(fmt.Errorf("get_shopping_list: %w", err))
	}

	var list common.ShoppingList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, common.NewUpstreamUnavailable(fmt.Errorf("get_shopping_list: failed to unmarshal: %w", err))
	}
	return &list, nil
}

// ListShoppingLists 列出使用者的購物清單
func (s *RedisListStore) ListShoppingLists(ctx context.Context, userID string) ([]common.ShoppingList, error) {
	ids, err := s.client.SMembers(ctx, userListsKeyPrefix+userID).Result()
	if err != nil {
		return nil, common.NewUpstreamUnavailable(fmt.Errorf("list_shopping_lists: %w", err))
	}

	var out []common.ShoppingList
	for _, id := range ids {
		list, err := s.GetShoppingList(ctx, id)
		if err != nil {
			if common.IsNotFound(err) {
				// TTL 到期後索引仍留著，略過即可
				continue
			}
			return nil, err
		}
		out = append(out, *list)
	}
	// SMembers 不保證順序，統一排序後再回傳
	sortShoppingLists(out)
	return out, nil
}

// SetItemChecked 切換購物清單項目的勾選狀態
func (s *RedisListStore) SetItemChecked(ctx context.Context, listID, normalizedName string, checked bool) error {
	list, err := s.GetShoppingList(ctx, listID)
	if err != nil {
		return err
	}

	found := false
	for i := range list.Items {
		if list.Items[i].NormalizedName == normalizedName {
			list.Items[i].IsChecked = checked
			found = true
			break
		}
	}
	if !found {
		return common.NewNotFound("shopping list item not found: %s", normalizedName)
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list: %w", err)
	}
	if err := s.client.Set(ctx, listKeyPrefix+listID, data, redis.KeepTTL).Err(); err != nil {
		return common.NewUpstreamUnavailable(fmt.Errorf("set_item_checked: %w", err))
	}
	return nil
}
