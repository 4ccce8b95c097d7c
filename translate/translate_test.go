package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("address 255 out of range", From("address %d out of range", 255))
	assert.Equal("line 4 pc 06", From("line %d pc %02x", 4, 6))
	assert.Equal("plain", From("plain"))
}
