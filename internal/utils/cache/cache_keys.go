package cache

import (
	"fmt"
	"strings"
)

type EntityType string

const (
	EntityProfile      EntityType = "profile"
	EntityTransactions EntityType = "transactions"
)

type KeyType string

const (
	KeyUser KeyType = "user"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// ProfileKey is the cached balance and profile view of a user.
func ProfileKey(userID string) string {
	return GenerateKey(EntityProfile, KeyUser, userID)
}

// TransactionsKey is the cached history page of a user for one limit.
func TransactionsKey(userID string, limit int) string {
	return fmt.Sprintf("%s:%d", GenerateKey(EntityTransactions, KeyUser, userID), limit)
}

// TransactionsPattern matches every cached history page of a user.
func TransactionsPattern(userID string) string {
	return GenerateKey(EntityTransactions, KeyUser, userID) + ":*"
}

// ParseKey extracts components from a cache key
func ParseKey(key string) map[string]string {
	parts := strings.SplitN(key, ":", 4)
	if len(parts) < 3 {
		return nil
	}

	result := map[string]string{"entity": parts[0]}
	result[parts[1]] = parts[2]
	if len(parts) == 4 {
		result["limit"] = parts[3]
	}
	return result
}
