package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hashed, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "hunter2" {
		t.Fatal("expected password to be hashed")
	}
	if err := ComparePassword(hashed, "hunter2"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}

	err = ComparePassword(hashed, "wrong")
	if !IsPasswordMismatch(err) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	hashed, err := HashPassword("hunter2", 99)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
