package repository

import (
	"context"
	"testing"

	"stressdost/internal/model"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemorySessionRepo()
	ctx := context.Background()

	session := model.NewSession("s1", "exam stress")
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != "s1" || got.RawInitialText != "exam stress" {
		t.Fatalf("unexpected session: %+v", got)
	}

	got.Status = model.SessionCompleted
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := repo.GetByID(ctx, "s1")
	if updated.Status != model.SessionCompleted {
		t.Errorf("status = %q", updated.Status)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gone, _ := repo.GetByID(ctx, "s1"); gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestMemoryRepoMissingSession(t *testing.T) {
	repo := NewMemorySessionRepo()
	got, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestMemoryRepoCopiesOnRead(t *testing.T) {
	repo := NewMemorySessionRepo()
	ctx := context.Background()

	session := model.NewSession("s2", "text")
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, _ := repo.GetByID(ctx, "s2")
	first.FilledSlots.Set("time_pressure", "exam_time_left", "2 weeks")

	second, _ := repo.GetByID(ctx, "s2")
	if _, ok := second.FilledSlots.Get("time_pressure", "exam_time_left"); ok {
		t.Error("mutating a read result must not leak into the store")
	}
}
