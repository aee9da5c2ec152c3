package passwordreset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/namanchauhanrajput/blogify/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T, expiry time.Duration) (*Store, context.Context) {
	t.Helper()
	return New(testutil.SetupTestDB(t), expiry), context.Background()
}

func TestCodeRoundTrip(t *testing.T) {
	store, ctx := setup(t, 0)
	userID := primitive.NewObjectID()

	code, err := store.Create(ctx, userID, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != CodeLength {
		t.Fatalf("code %q has length %d, want %d", code, len(code), CodeLength)
	}

	if err := store.Verify(ctx, userID, code); err != nil {
		t.Fatalf("Verify with the right code: %v", err)
	}

	// Single use: the record is consumed.
	if err := store.Verify(ctx, userID, code); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Verify = %v, want ErrNotFound", err)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	store, ctx := setup(t, 0)
	userID := primitive.NewObjectID()

	code, err := store.Create(ctx, userID, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := store.Verify(ctx, userID, wrong); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("err = %v, want ErrInvalidCode", err)
	}

	// The right code still works after one miss.
	if err := store.Verify(ctx, userID, code); err != nil {
		t.Errorf("Verify after a miss: %v", err)
	}
}

func TestVerifyAttemptCap(t *testing.T) {
	store, ctx := setup(t, 0)
	userID := primitive.NewObjectID()

	code, err := store.Create(ctx, userID, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < MaxVerifyAttempts; i++ {
		if err := store.Verify(ctx, userID, wrong); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}

	// Cap reached: even the right code is refused now.
	if err := store.Verify(ctx, userID, code); !errors.Is(err, ErrTooManyAttempts) {
		t.Errorf("err = %v, want ErrTooManyAttempts", err)
	}
}

func TestCreateReplacesPendingReset(t *testing.T) {
	store, ctx := setup(t, 0)
	userID := primitive.NewObjectID()

	first, err := store.Create(ctx, userID, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Create(ctx, userID, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		// The old code must be dead once a new one is issued.
		if err := store.Verify(ctx, userID, first); err == nil {
			t.Error("stale code still verifies after reissue")
		}
	}
	if err := store.Verify(ctx, userID, second); err != nil {
		t.Errorf("fresh code rejected: %v", err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	store, ctx := setup(t, time.Millisecond)
	userID := primitive.NewObjectID()

	code, err := store.Create(ctx, userID, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if err := store.Verify(ctx, userID, code); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound once expired", err)
	}
}
