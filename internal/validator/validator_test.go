package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailLike(t *testing.T) {
	assert.True(t, IsEmailLike("alice@example.com"))
	assert.True(t, IsEmailLike(" bob@shop.co.jp "))
	assert.False(t, IsEmailLike(""))
	assert.False(t, IsEmailLike("alice"))
	assert.False(t, IsEmailLike("alice@example"))
	assert.False(t, IsEmailLike("a b@example.com"))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("3f1c2a9e-8d4b-4c1e-9a7f-2b6d5e4c3a10"))
	assert.False(t, IsUUID("C1"))
	assert.False(t, IsUUID(""))
	//uuid.Parseは波括弧やurn形式も受け付けるが、ここでは拒否する
	assert.False(t, IsUUID("{3f1c2a9e-8d4b-4c1e-9a7f-2b6d5e4c3a10}"))
	assert.False(t, IsUUID("urn:uuid:3f1c2a9e-8d4b-4c1e-9a7f-2b6d5e4c3a10"))
}
