package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtrValue(t *testing.T) {
	assert.Equal(t, "5", Value(Ptr("5")))
	assert.Equal(t, uint32(0), Value(Ptr(uint32(0))))

	var absent *string
	assert.Equal(t, "", Value(absent))

	var notes *[]string
	assert.Nil(t, Value(notes))

	empty := Ptr([]string{})
	assert.NotNil(t, Value(empty))
	assert.Empty(t, Value(empty))
}
