package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestActorFromFallsBackToSystem(t *testing.T) {
	actorType, actorID := ActorFrom(testContext())
	if actorType != "system" || actorID != "" {
		t.Errorf("expected system actor, got %s/%s", actorType, actorID)
	}
}

func TestActorFromClaims(t *testing.T) {
	c := testContext()
	c.Set("user", &JWTClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "u1",
		},
	})

	actorType, actorID := ActorFrom(c)
	if actorType != "admin" || actorID != "u1" {
		t.Errorf("expected admin/u1, got %s/%s", actorType, actorID)
	}
}

func TestParseTokenRoundTrip(t *testing.T) {
	original := jwtKey
	jwtKey = []byte("test-key")
	defer func() { jwtKey = original }()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		Name: "Karim Bennani",
		Role: "professor",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwtKey)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	claims, err := ParseToken(signed)
	if err != nil {
		t.Fatalf("ParseToken should succeed: %v", err)
	}
	if claims.Role != "professor" || claims.Subject != "u1" {
		t.Errorf("claims lost: %+v", claims)
	}

	if _, err := ParseToken(signed + "tampered"); err == nil {
		t.Error("tampered token should be rejected")
	}
}
