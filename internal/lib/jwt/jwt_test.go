package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssertion(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("edge-secret"))
	require.NoError(t, err)

	return s
}

func TestActorEmail(t *testing.T) {
	tests := []struct {
		name      string
		assertion string
		want      string
		wantErr   bool
	}{
		{
			name:      "email claim",
			assertion: newAssertion(t, jwt.MapClaims{"email": "admin@example.com", "exp": time.Now().Add(time.Hour).Unix()}),
			want:      "admin@example.com",
		},
		{
			name:      "no email claim",
			assertion: newAssertion(t, jwt.MapClaims{"sub": "123"}),
			wantErr:   true,
		},
		{
			name:      "not a token",
			assertion: "garbage",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ActorEmail(tt.assertion)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
