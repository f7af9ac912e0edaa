package session_test

import (
	"context"
	"sync"
	"testing"

	"crystal-petrol-bot/internal/domain/model"
	"crystal-petrol-bot/internal/infra/session"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get on empty store: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got %+v", got)
	}

	sess := model.NewSession()
	sess.Step = model.StepAwaitPhone
	sess.Name = "Ali"
	if err := store.Set(ctx, 1, sess); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err = store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Step != model.StepAwaitPhone || got.Name != "Ali" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := store.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = store.Get(ctx, 1)
	if err != nil || got != nil {
		t.Fatalf("expected cleared session, got %+v err %v", got, err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	sess := model.NewSession()
	sess.Name = "Ali"
	if err := store.Set(ctx, 1, sess); err != nil {
		t.Fatal(err)
	}

	first, _ := store.Get(ctx, 1)
	first.Name = "Vali"

	second, _ := store.Get(ctx, 1)
	if second.Name != "Ali" {
		t.Fatalf("stored session mutated through returned pointer: %+v", second)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sess := model.NewSession()
			sess.Step = model.StepAwaitName
			_ = store.Set(ctx, id, sess)
			_, _ = store.Get(ctx, id)
			_ = store.Clear(ctx, id)
		}(int64(i % 4))
	}
	wg.Wait()
}
