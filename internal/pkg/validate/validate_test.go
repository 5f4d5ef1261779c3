package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.True(t, Name("Ada Lovelace").Valid)
	assert.True(t, Name("  bob ").Valid)

	assert.Equal(t, "name is required", Name("").Reason)
	assert.Equal(t, "name is required", Name("   ").Reason)
	assert.Equal(t, "name must be at least 3 characters", Name("ab").Reason)
	assert.Equal(t, "name must be at least 3 characters", Name("  ab  ").Reason)
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("ada@example.com").Valid)

	assert.Equal(t, "email is required", Email("").Reason)
	assert.Equal(t, "email is required", Email("  ").Reason)
	assert.Equal(t, "email format is invalid", Email("not-an-email").Reason)
	assert.Equal(t, "email format is invalid", Email("Ada <ada@example.com>").Reason)
	assert.Equal(t, "email format is invalid", Email("ada@example.com ").Reason)
}

func TestNonBlank(t *testing.T) {
	assert.True(t, NonBlank("value", "field").Valid)

	assert.Equal(t, "password is required", NonBlank("", "password").Reason)
	assert.Equal(t, "address is required", NonBlank("   ", "address").Reason)
}

func TestJSONObject(t *testing.T) {
	assert.True(t, JSONObject(map[string]any{"name": "Ada"}).Valid)
	assert.True(t, JSONObject(map[string]any{}).Valid)

	assert.False(t, JSONObject(nil).Valid)
	assert.False(t, JSONObject("a string").Valid)
	assert.False(t, JSONObject([]any{"a", "b"}).Valid)
	assert.False(t, JSONObject(42.0).Valid)
	assert.Equal(t, "jsonCV must be a valid JSON object", JSONObject(nil).Reason)
}
