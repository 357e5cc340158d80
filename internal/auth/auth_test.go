package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestead/server/internal/models"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.IssueToken("party-1", models.RoleRealtor)
	require.NoError(t, err)

	partyID, role, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "party-1", partyID)
	assert.Equal(t, models.RoleRealtor, role)
}

func TestParseToken_Invalid(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, _, err := m.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with another secret fails verification.
	other := NewManager("other-secret", time.Hour)
	token, err := other.IssueToken("party-1", models.RoleOwner)
	require.NoError(t, err)
	_, _, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.IssueToken("party-1", models.RoleCustomer)
	require.NoError(t, err)

	_, _, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_UnknownRole(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.IssueToken("party-1", models.Role("intruder"))
	require.NoError(t, err)

	_, _, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func authTestRouter(m *Manager, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", m.Middleware())
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   ActorID(c),
			"role": string(ActorRole(c)),
		})
	})
	return router
}

func TestMiddleware(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	router := authTestRouter(m)

	// No header.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token.
	token, err := m.IssueToken("party-1", models.RoleOwner)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "party-1")
	assert.Contains(t, w.Body.String(), string(models.RoleOwner))
}

func TestRequireRole(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	router := authTestRouter(m, models.RoleAdmin, models.RoleRealtor)

	realtorToken, err := m.IssueToken("party-1", models.RoleRealtor)
	require.NoError(t, err)
	customerToken, err := m.IssueToken("party-2", models.RoleCustomer)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+realtorToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
