package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyring_SetGet(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvVar, "")

	k := NewKeyring()
	assert.True(t, k.IsAvailable())

	_, err := k.GetKey()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
	assert.Contains(t, err.Error(), EnvVar)

	require.NoError(t, k.SetKey("hunter22"))
	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "hunter22", key)
}

func TestKeyring_EmptyPassword(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, NewKeyring().SetKey(""))
}

func TestKeyring_EnvOverride(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvVar, "from-env")

	k := NewKeyring()
	require.NoError(t, k.SetKey("stored"))

	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestKeyring_FallsBackToEnvWhenStoreFails(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	t.Setenv(EnvVar, "")

	k := NewKeyring()
	assert.False(t, k.IsAvailable())
	assert.ErrorContains(t, k.SetKey("pw"), EnvVar)

	t.Setenv(EnvVar, "pw")
	assert.True(t, k.IsAvailable())
	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "pw", key)
}
