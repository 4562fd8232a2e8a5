package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"droneVideoOps/internal/testutil"
	"droneVideoOps/models"
)

func newTestOrder(code string, created time.Time) *models.Order {
	return &models.Order{
		OrderID:      code,
		ClientName:   "Asha Rao",
		ClientPhone:  "+919876543210",
		City:         "Mumbai",
		Location:     "Marine Drive",
		ShootDate:    "2026-11-02",
		Package:      models.PackageStandard,
		Amount:       15000,
		Requirements: "Sunset aerials for a wedding teaser",
		Status:       models.OrderStatusPending,
		CreatedAt:    created,
	}
}

func TestOrderRepository_CreateGetUpdate(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orderrepo_crud")
	repo := NewOrderRepository(d)
	ctx := context.Background()

	o, err := repo.Create(ctx, newTestOrder("ORD00000001", time.Now()))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.ID == "" || o.OrderID != "ORD00000001" || o.Status != models.OrderStatusPending {
		t.Fatalf("unexpected created order: %+v", o)
	}

	byCode, err := repo.GetByCode(ctx, "ORD00000001")
	if err != nil || byCode == nil || byCode.ID != o.ID {
		t.Fatalf("get by code: %v %+v", err, byCode)
	}

	o.City = "Pune"
	o.Amount = 18000
	if err := repo.Update(ctx, o); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByID(ctx, o.ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v %+v", err, got)
	}
	if got.City != "Pune" || got.Amount != 18000 {
		t.Fatalf("update not persisted: %+v", got)
	}

	missing, err := repo.GetByID(ctx, "does-not-exist")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing order, got %+v err=%v", missing, err)
	}
}

func TestOrderRepository_TransitionStatusIsCompareAndSet(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orderrepo_cas")
	repo := NewOrderRepository(d)
	ctx := context.Background()

	o, err := repo.Create(ctx, newTestOrder("ORD00000002", time.Now()))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if err := repo.TransitionStatus(ctx, o.ID, models.OrderStatusPending, models.OrderStatusApproved, time.Now()); err != nil {
		t.Fatalf("transition: %v", err)
	}
	// A second writer still believing the order is pending must lose.
	err = repo.TransitionStatus(ctx, o.ID, models.OrderStatusPending, models.OrderStatusRejected, time.Now())
	if !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
	got, _ := repo.GetByID(ctx, o.ID)
	if got.Status != models.OrderStatusApproved {
		t.Fatalf("status = %s, want approved", got.Status)
	}
}

func TestOrderRepository_ListNewestFirstAndPaging(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orderrepo_list")
	repo := NewOrderRepository(d)
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		o := newTestOrder(fmt.Sprintf("ORD%08d", i+10), base.Add(time.Duration(i)*time.Minute))
		if i%2 == 1 {
			o.City = "Delhi"
		}
		if _, err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 || all[0].OrderID != "ORD00000014" || all[4].OrderID != "ORD00000010" {
		t.Fatalf("unexpected order: first=%s last=%s len=%d", all[0].OrderID, all[len(all)-1].OrderID, len(all))
	}

	again, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	for i := range all {
		if all[i].ID != again[i].ID {
			t.Fatalf("list not stable at %d: %s vs %s", i, all[i].ID, again[i].ID)
		}
	}

	page1, err := repo.ListPage(ctx, ListOrdersParams{PageSize: 2})
	if err != nil || len(page1) != 2 {
		t.Fatalf("page1: %v len=%d", err, len(page1))
	}
	last := page1[len(page1)-1]
	page2, err := repo.ListPage(ctx, ListOrdersParams{PageSize: 2, AfterCreated: last.CreatedAt, AfterID: last.ID})
	if err != nil || len(page2) != 2 {
		t.Fatalf("page2: %v len=%d", err, len(page2))
	}
	if page2[0].OrderID != "ORD00000012" {
		t.Fatalf("page2 starts at %s, want ORD00000012", page2[0].OrderID)
	}

	delhi, err := repo.ListPage(ctx, ListOrdersParams{City: "delhi"})
	if err != nil || len(delhi) != 2 {
		t.Fatalf("city filter: %v len=%d", err, len(delhi))
	}
	pending, err := repo.ListPage(ctx, ListOrdersParams{Statuses: []models.OrderStatus{models.OrderStatusApproved}})
	if err != nil || len(pending) != 0 {
		t.Fatalf("status filter: %v len=%d", err, len(pending))
	}
}

func TestOrderRepository_DeleteCascadesChildren(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orderrepo_cascade")
	store := NewStore(d)
	ctx := context.Background()

	o, err := store.Orders.Create(ctx, newTestOrder("ORD00000003", time.Now()))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := store.Comments.Create(ctx, &models.Comment{OrderID: o.ID, AuthorRole: models.RoleAdmin, Text: "hello"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := store.Orders.Delete(ctx, o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	comments, err := store.Comments.ListByOrder(ctx, o.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected comments removed with order, got %d", len(comments))
	}
	if err := store.Orders.Delete(ctx, o.ID); err == nil {
		t.Fatalf("expected error deleting a missing order")
	}
}
