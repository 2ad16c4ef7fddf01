package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationGID(t *testing.T) {
	assert.Equal(t, "gid://shopify/Location/123", LocationGID("123"))
	assert.Equal(t, "gid://shopify/Location/123", LocationGID(" 123 "))
	assert.Equal(t, "gid://shopify/Location/456", LocationGID("gid://shopify/Location/456"))
}

func TestNumericID(t *testing.T) {
	assert.Equal(t, int64(789), NumericID("gid://shopify/Product/789"))
	assert.Equal(t, int64(0), NumericID("gid://shopify/Product/abc"))
	assert.Equal(t, int64(0), NumericID("not-a-gid"))
}

func TestIsGID(t *testing.T) {
	assert.True(t, IsGID("gid://shopify/InventoryItem/42"))
	assert.False(t, IsGID("42"))
	assert.False(t, IsGID("gid://shopify/Location/"))
}
