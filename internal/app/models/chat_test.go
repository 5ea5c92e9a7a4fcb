package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectChatID(t *testing.T) {
	assert.Equal(t, "3_7", DirectChatID(3, 7))
	assert.Equal(t, "3_7", DirectChatID(7, 3))
	assert.Equal(t, "5_5", DirectChatID(5, 5))
	assert.Equal(t, "12_103", DirectChatID(103, 12))
}
