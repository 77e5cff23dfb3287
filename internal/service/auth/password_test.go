package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hashed == "correct horse battery staple" {
		t.Fatal("Expected hash to differ from the plaintext")
	}

	if err := hasher.Compare(hashed, "correct horse battery staple"); err != nil {
		t.Errorf("Expected matching password to compare clean, got %v", err)
	}

	if err := hasher.Compare(hashed, "wrong password"); err == nil {
		t.Error("Expected mismatch error for the wrong password")
	}
}

func TestBcryptHasherHashesAreSalted(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if first == second {
		t.Error("Expected two hashes of the same password to differ")
	}
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cost int
		want int
	}{
		{name: "below minimum", cost: bcrypt.MinCost - 1, want: bcrypt.DefaultCost},
		{name: "above maximum", cost: bcrypt.MaxCost + 1, want: bcrypt.DefaultCost},
		{name: "in range", cost: 12, want: 12},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			hasher := NewBcryptHasher(tc.cost)
			if hasher.cost != tc.want {
				t.Errorf("Expected cost %d, got %d", tc.want, hasher.cost)
			}
		})
	}
}
