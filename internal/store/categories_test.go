package store

import (
	"context"
	"errors"
	"testing"

	"github.com/RhodP10/Lost-And-Found/internal/db"
	"github.com/RhodP10/Lost-And-Found/internal/model"
)

func TestDefaultCategoriesSeeded(t *testing.T) {
	database := db.NewTestDB(t)

	categories, err := ListCategories(context.Background(), database)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 7 {
		t.Fatalf("expected 7 seeded categories, got %d", len(categories))
	}

	names := make(map[string]bool)
	for _, c := range categories {
		names[c.Name] = true
	}
	for _, want := range []string{"Electronics", "Keys", "Bags", "Other"} {
		if !names[want] {
			t.Errorf("missing seeded category %q", want)
		}
	}
}

func TestCreateCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, err := CreateCategory(ctx, database, "  Sports Equipment  ")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if category.Name != "Sports Equipment" {
		t.Errorf("expected trimmed name, got %q", category.Name)
	}

	if _, err := CreateCategory(ctx, database, "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank name, got %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	categories, _ := ListCategories(ctx, database)
	var bags model.Category
	for _, c := range categories {
		if c.Name == "Bags" {
			bags = c
		}
	}

	CreateItem(ctx, database, ItemParams{
		Title: "Backpack", Category: "Bags", Status: model.ItemStatusLost,
		ReporterName: "A", ReporterEmail: "a@b.c",
	})

	if err := DeleteCategory(ctx, database, bags.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Errorf("expected ErrCategoryInUse, got %v", err)
	}

	category, _ := CreateCategory(ctx, database, "Umbrellas")
	if err := DeleteCategory(ctx, database, category.ID); err != nil {
		t.Errorf("deleting unused category: %v", err)
	}

	if err := DeleteCategory(ctx, database, 999); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}
