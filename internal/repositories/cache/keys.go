package cache

import "fmt"

type EntityType string

const (
	EntityFeePolicy EntityType = "fee_policy"
)

type KeyType string

const (
	KeyCurrent KeyType = "current"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	if value == nil {
		return fmt.Sprintf("%s:%s", entity, keyType)
	}
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// FeePolicyKey is where the current fee policy is cached.
var FeePolicyKey = GenerateKey(EntityFeePolicy, KeyCurrent, nil)
