package credentials

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCredential_StringMasksKey(t *testing.T) {
	c := Credential{Provider: "mindee", APIKey: "abcdef123456", BaseURL: "https://api.mindee.net"}

	s := c.String()
	assert.NotContains(t, s, "abcdef12")
	assert.Contains(t, s, "***3456")
	assert.Contains(t, s, "mindee")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "***", Mask("short"))
	assert.Equal(t, "***5678", Mask("12345678"))
}

func TestMask_NeverLeaksPrefix(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := rapid.StringMatching(`[A-Za-z0-9]{8,64}`).Draw(t, "key")
		masked := Mask(key)
		if strings.Contains(masked, key[:len(key)-4]) {
			t.Fatalf("mask %q leaks prefix of %q", masked, key)
		}
		if !strings.HasSuffix(key, strings.TrimPrefix(masked, "***")) {
			t.Fatalf("mask %q is not a suffix of %q", masked, key)
		}
	})
}

func TestStaticStore_Resolve(t *testing.T) {
	s := StaticStore{"mindee": {Provider: "mindee", APIKey: "k"}, "empty": {Provider: "empty"}}

	c, err := s.Resolve(context.Background(), " Mindee ")
	require.NoError(t, err)
	assert.Equal(t, "k", c.APIKey)

	_, err = s.Resolve(context.Background(), "empty")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Resolve(context.Background(), "other")
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingStore struct{ err error }

func (f failingStore) Resolve(context.Context, string) (Credential, error) {
	return Credential{}, f.err
}

func TestChainStore_Resolve(t *testing.T) {
	ctx := context.Background()
	primary := StaticStore{}
	fallback := StaticStore{"mindee": {Provider: "mindee", APIKey: "from-config"}}

	c, err := ChainStore{primary, nil, fallback}.Resolve(ctx, "mindee")
	require.NoError(t, err)
	assert.Equal(t, "from-config", c.APIKey)

	_, err = ChainStore{primary}.Resolve(ctx, "mindee")
	assert.ErrorIs(t, err, ErrNotFound)

	boom := errors.New("db down")
	_, err = ChainStore{failingStore{boom}, fallback}.Resolve(ctx, "mindee")
	assert.ErrorIs(t, err, boom)
}
