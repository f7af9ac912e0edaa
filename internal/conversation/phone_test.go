package conversation_test

import (
	"errors"
	"testing"

	"crystal-petrol-bot/internal/conversation"
	"crystal-petrol-bot/internal/domain"
)

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "local nine digits", raw: "901234567", want: "+998901234567"},
		{name: "country code no plus", raw: "998901234567", want: "+998901234567"},
		{name: "full international", raw: "+998901234567", want: "+998901234567"},
		{name: "landline style eight prefix", raw: "812345678", want: "+998812345678"},
		{name: "spaces and dashes", raw: "+998 90 123-45-67", want: "+998901234567"},
		{name: "too short", raw: "12345", wantErr: true},
		{name: "too long", raw: "9989012345678", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "letters only", raw: "call me", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := conversation.NormalizePhone(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidPhone) {
					t.Fatalf("expected ErrInvalidPhone, got %v (value %q)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	once, err := conversation.NormalizePhone("90 123 45 67")
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := conversation.NormalizePhone(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if once != twice {
		t.Errorf("normalization not idempotent: %q then %q", once, twice)
	}
}
