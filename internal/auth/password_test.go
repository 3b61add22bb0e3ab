package auth

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(hash, "correct"); err != nil {
		t.Errorf("matching password rejected: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordCostFallback(t *testing.T) {
	hash, err := HashPassword("correct", 0)
	if err != nil {
		t.Fatalf("HashPassword with zero cost: %v", err)
	}
	if err := ComparePassword(hash, "correct"); err != nil {
		t.Errorf("hash from fallback cost does not verify: %v", err)
	}
}
