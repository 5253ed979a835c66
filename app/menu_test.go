package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tiffinbox/tiffinbox/adapters/clock"
	"github.com/tiffinbox/tiffinbox/adapters/idgen"
	"github.com/tiffinbox/tiffinbox/adapters/memory"
	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/domain/menu"
)

func newMenuService(t *testing.T) *app.MenuService {
	t.Helper()
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return app.NewMenuService(
		memory.NewCategoryStore(),
		memory.NewItemStore(),
		clk,
		idgen.NewSequential("mnu-"),
		zerolog.Nop(),
	)
}

func TestCreateCategory(t *testing.T) {
	svc := newMenuService(t)

	c, err := svc.CreateCategory(context.Background(), "Starters", "Appetizing starters", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Name != "Starters" {
		t.Errorf("name = %q", c.Name)
	}
	if c.ImageURL != menu.DefaultImageURL {
		t.Errorf("empty image should get the default, got %q", c.ImageURL)
	}
}

func TestCreateCategory_Duplicate(t *testing.T) {
	svc := newMenuService(t)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "Starters", "desc", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.CreateCategory(ctx, "Starters", "other desc", "")
	if !errors.Is(err, menu.ErrDuplicateCategory) {
		t.Errorf("want ErrDuplicateCategory, got %v", err)
	}
}

func TestCreateCategory_MissingFields(t *testing.T) {
	svc := newMenuService(t)

	if _, err := svc.CreateCategory(context.Background(), "", "desc", ""); err == nil {
		t.Error("empty name should fail")
	}
	if _, err := svc.CreateCategory(context.Background(), "Name", "", ""); err == nil {
		t.Error("empty description should fail")
	}
}

func TestDeleteCategory_RefusedWhileItemsExist(t *testing.T) {
	svc := newMenuService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, "Beverages", "drinks", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, err := svc.CreateItem(ctx, app.ItemParams{
		Name:        "Masala Chai",
		Description: "Spiced tea",
		Price:       30,
		CategoryID:  cat.ID,
		IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteCategory(ctx, cat.ID); !errors.Is(err, menu.ErrCategoryNotEmpty) {
		t.Errorf("want ErrCategoryNotEmpty, got %v", err)
	}

	// After removing the item the category can go
	if err := svc.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Errorf("delete after emptying failed: %v", err)
	}
}

func TestCreateItem_UnknownCategory(t *testing.T) {
	svc := newMenuService(t)

	_, err := svc.CreateItem(context.Background(), app.ItemParams{
		Name:        "Ghost Dish",
		Description: "no category",
		Price:       100,
		CategoryID:  "missing",
	})
	if !errors.Is(err, menu.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestListItems_FilterByCategory(t *testing.T) {
	svc := newMenuService(t)
	ctx := context.Background()

	food, err := svc.CreateCategory(ctx, "Main Course", "mains", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drinks, err := svc.CreateCategory(ctx, "Beverages", "drinks", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.CreateItem(ctx, app.ItemParams{Name: "Dal", Description: "lentils", Price: 180, CategoryID: food.ID, IsAvailable: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateItem(ctx, app.ItemParams{Name: "Chai", Description: "tea", Price: 30, CategoryID: drinks.ID, IsAvailable: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := svc.ListItems(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all items = %d, want 2", len(all))
	}

	filtered, err := svc.ListItems(ctx, drinks.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Chai" {
		t.Errorf("filtered = %+v, want just Chai", filtered)
	}
}

func TestUpdateItem(t *testing.T) {
	svc := newMenuService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, "Drinks", "bar", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it, err := svc.CreateItem(ctx, app.ItemParams{
		Name: "Beer", Description: "lager", Price: 180, CategoryID: cat.ID, IsAvailable: true, IsAlcoholic: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	upd, err := svc.UpdateItem(ctx, it.ID, app.ItemParams{
		Name: "Kingfisher Beer", Description: "premium lager", Price: 200, CategoryID: cat.ID, IsAvailable: false, IsAlcoholic: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if upd.Name != "Kingfisher Beer" || upd.Price != 200 || upd.IsAvailable {
		t.Errorf("update not applied: %+v", upd)
	}
	if !upd.IsAlcoholic {
		t.Error("alcohol flag should be kept")
	}
}
