package auth

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCreateAndVerifyToken(t *testing.T) {
	manager, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	userID := primitive.NewObjectID()
	token, err := manager.CreateToken(userID, true)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := manager.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != userID.Hex() {
		t.Errorf("UserID = %q, want %q", claims.UserID, userID.Hex())
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin flag lost")
	}
}

func TestExpiredToken(t *testing.T) {
	manager, err := NewJWTManager(testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	token, err := manager.CreateToken(primitive.NewObjectID(), false)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := manager.VerifyToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("got %v, want ErrExpiredToken", err)
	}
}

func TestTamperedToken(t *testing.T) {
	manager, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	other, err := NewJWTManager("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	token, err := other.CreateToken(primitive.NewObjectID(), false)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := manager.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong key: got %v, want ErrInvalidToken", err)
	}
	if _, err := manager.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage: got %v, want ErrInvalidToken", err)
	}
}

func TestShortSecretRejected(t *testing.T) {
	if _, err := NewJWTManager("tooshort", time.Hour); err == nil {
		t.Fatal("short secret accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "secret123" {
		t.Fatal("password not hashed")
	}

	if err := CheckPassword("secret123", hashed); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrongpass", hashed); err == nil {
		t.Error("wrong password accepted")
	}
}
