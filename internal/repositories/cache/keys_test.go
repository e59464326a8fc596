package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "fee_policy:current", FeePolicyKey)
	assert.Equal(t, "fee_policy:current:7", GenerateKey(EntityFeePolicy, KeyCurrent, 7))
}
