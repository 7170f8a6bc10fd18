package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerName_Trims(t *testing.T) {
	name, err := NewPlayerName("  Alice  ")
	require.NoError(t, err)
	assert.Equal(t, PlayerName("Alice"), name)
}

func TestNewPlayerName_RejectsEmpty(t *testing.T) {
	_, err := NewPlayerName("   ")
	assert.ErrorIs(t, err, ErrEmptyPlayerName)
}

func TestNormalizeInviteCode(t *testing.T) {
	assert.Equal(t, InviteCode("ABCD"), NormalizeInviteCode(" abcd "))
	assert.Equal(t, InviteCode("WXYZ"), NormalizeInviteCode("WxYz"))
}
