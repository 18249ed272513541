package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@example.mx", MaskEmail("ana.perez@example.mx"))
	assert.Equal(t, "ñ***@example.mx", MaskEmail("ñandu@example.mx"))
	assert.Equal(t, "***@example.mx", MaskEmail("@example.mx"))
	assert.Equal(t, "***", MaskEmail("not-an-address"))
	assert.Equal(t, "***", MaskEmail("trailing@"))
}
