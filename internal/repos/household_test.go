package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sewasew/census-backend/internal/repos/testutil"
	"github.com/sewasew/census-backend/internal/types"
)

func strPtr(s string) *string { return &s }

func TestHouseholdRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewHouseholdRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, &types.Household{
		Latitude:    9.03,
		Longitude:   38.74,
		TitheStatus: strPtr("paid"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("Create: expected a generated identifier")
	}

	if _, err := repo.Create(ctx, nil, &types.Household{Latitude: -1.29, Longitude: 36.82}); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	all, err := repo.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAll: expected 2 households, got %d", len(all))
	}

	count, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Count: expected 2, got %d", count)
	}

	paid, err := repo.CountByTitheStatus(ctx, nil, "paid")
	if err != nil {
		t.Fatalf("CountByTitheStatus: %v", err)
	}
	if paid != 1 {
		t.Fatalf("CountByTitheStatus(paid): expected 1, got %d", paid)
	}

	pending, err := repo.CountByTitheStatus(ctx, nil, "pending")
	if err != nil {
		t.Fatalf("CountByTitheStatus: %v", err)
	}
	if pending != 0 {
		t.Fatalf("CountByTitheStatus(pending): expected 0, got %d", pending)
	}
}
