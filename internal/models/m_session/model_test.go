package m_session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionFlag(t *testing.T) {
	assert.Equal(t, "true", Encode(true))
	assert.Equal(t, "false", Encode(false))

	assert.True(t, Decode("true", true))
	assert.False(t, Decode("true", false), "missing key is logged out")
	assert.False(t, Decode("TRUE", true))
	assert.False(t, Decode("1", true))
	assert.False(t, Decode("false", true))
}
