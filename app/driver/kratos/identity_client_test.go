package kratos

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	kratosclient "github.com/ory/kratos-client-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-core/app/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTokenClient(t *testing.T) *IdentityClient {
	t.Helper()
	tokenPath := filepath.Join(t.TempDir(), "session.token")
	return NewIdentityClient(nil, tokenPath, time.Minute, testLogger())
}

func TestIdentityClient_TokenRoundtrip(t *testing.T) {
	c := newTokenClient(t)

	c.persistToken("ory_st_abc123")
	assert.Equal(t, "ory_st_abc123", c.loadToken())

	info, err := os.Stat(c.tokenPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestIdentityClient_TokenTrimmedOnLoad(t *testing.T) {
	c := newTokenClient(t)

	require.NoError(t, os.WriteFile(c.tokenPath, []byte("  ory_st_abc123\n"), 0o600))
	assert.Equal(t, "ory_st_abc123", c.loadToken())
}

func TestIdentityClient_EmptyTokenRemovesFile(t *testing.T) {
	c := newTokenClient(t)

	c.persistToken("ory_st_abc123")
	c.persistToken("")

	_, err := os.Stat(c.tokenPath)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, c.loadToken())

	// Removing an already-absent file must not blow up either.
	c.persistToken("")
}

func TestIdentityClient_NoTokenPath(t *testing.T) {
	c := NewIdentityClient(nil, "", time.Minute, testLogger())

	c.persistToken("ory_st_abc123")
	assert.Empty(t, c.loadToken())
}

func TestIdentityClient_PollIntervalDefault(t *testing.T) {
	c := NewIdentityClient(nil, "", 0, testLogger())
	assert.Equal(t, time.Minute, c.pollInterval)
}

func TestIdentityClient_AdoptSessionNotifiesAndPersists(t *testing.T) {
	c := newTokenClient(t)

	var seen []*domain.Identity
	c.handlers[0] = func(id *domain.Identity) { seen = append(seen, id) }

	identity := &domain.Identity{ID: "identity-1", Email: "renter@example.com"}
	c.adoptSession("ory_st_abc123", identity)

	require.Len(t, seen, 1)
	assert.Equal(t, identity, seen[0])
	assert.Equal(t, "ory_st_abc123", c.loadToken())

	// Signing out clears both the in-memory state and the persisted token.
	c.adoptSession("", nil)
	require.Len(t, seen, 2)
	assert.Nil(t, seen[1])
	assert.Empty(t, c.loadToken())
}

func TestIdentityFromKratos(t *testing.T) {
	t.Run("nil identity", func(t *testing.T) {
		assert.Nil(t, identityFromKratos(nil))
	})

	t.Run("email from traits", func(t *testing.T) {
		id := &kratosclient.Identity{
			Id:     "identity-1",
			Traits: map[string]interface{}{"email": "renter@example.com"},
		}
		got := identityFromKratos(id)
		require.NotNil(t, got)
		assert.Equal(t, "identity-1", got.ID)
		assert.Equal(t, "renter@example.com", got.Email)
	})

	t.Run("non-map traits yields empty email", func(t *testing.T) {
		id := &kratosclient.Identity{Id: "identity-2", Traits: "oops"}
		got := identityFromKratos(id)
		require.NotNil(t, got)
		assert.Empty(t, got.Email)
	})

	t.Run("missing email trait", func(t *testing.T) {
		id := &kratosclient.Identity{
			Id:     "identity-3",
			Traits: map[string]interface{}{"name": "no email"},
		}
		got := identityFromKratos(id)
		require.NotNil(t, got)
		assert.Empty(t, got.Email)
	})
}
