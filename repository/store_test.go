package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"droneVideoOps/internal/testutil"
	"droneVideoOps/models"
)

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "store_rollback")
	store := NewStore(d)
	ctx := context.Background()

	o, err := store.Orders.Create(ctx, newTestOrder("ORD00000100", time.Now()))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	boom := errors.New("boom")
	err = store.WithTx(ctx, func(tx *Store) error {
		if err := tx.Orders.TransitionStatus(ctx, o.ID, models.OrderStatusPending, models.OrderStatusApproved, time.Now()); err != nil {
			return err
		}
		if _, err := tx.Comments.Create(ctx, &models.Comment{OrderID: o.ID, AuthorRole: models.RoleAdmin, Text: "Approved"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := store.Orders.GetByID(ctx, o.ID)
	if got.Status != models.OrderStatusPending {
		t.Fatalf("status = %s, want pending after rollback", got.Status)
	}
	comments, _ := store.Comments.ListByOrder(ctx, o.ID)
	if len(comments) != 0 {
		t.Fatalf("expected no comments after rollback, got %d", len(comments))
	}
}

func TestStaffRepository_CodesAreUnique(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "staffrepo")
	repo := NewStaffRepository(d)
	ctx := context.Background()

	p, err := repo.Create(ctx, &models.Staff{Code: "MUM001", Role: models.StaffPilot, Name: "Ravi", City: "Mumbai", Username: "ravi", Active: true})
	if err != nil {
		t.Fatalf("create pilot: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Staff{Code: "EDT001", Role: models.StaffEditor, Name: "Meera", Active: true}); err != nil {
		t.Fatalf("create editor: %v", err)
	}
	_, err = repo.Create(ctx, &models.Staff{Code: "MUM001", Role: models.StaffPilot, Name: "Dup", Active: true})
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	byUser, err := repo.GetByUsername(ctx, "ravi")
	if err != nil || byUser == nil || byUser.ID != p.ID {
		t.Fatalf("get by username: %v %+v", err, byUser)
	}
	pilots, err := repo.List(ctx, models.StaffPilot, true)
	if err != nil || len(pilots) != 1 {
		t.Fatalf("list pilots: %v len=%d", err, len(pilots))
	}
	if err := repo.SetActive(ctx, p.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	pilots, _ = repo.List(ctx, models.StaffPilot, true)
	if len(pilots) != 0 {
		t.Fatalf("expected no active pilots, got %d", len(pilots))
	}
	everyone, _ := repo.List(ctx, "", false)
	if len(everyone) != 2 {
		t.Fatalf("expected 2 staff, got %d", len(everyone))
	}
}

func TestAssignmentRepository_LatestIsCurrent(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "assignrepo")
	store := NewStore(d)
	ctx := context.Background()

	o, _ := store.Orders.Create(ctx, newTestOrder("ORD00000200", time.Now()))
	p1, _ := store.Staff.Create(ctx, &models.Staff{Code: "MUM010", Role: models.StaffPilot, Name: "P1", Active: true})
	p2, _ := store.Staff.Create(ctx, &models.Staff{Code: "MUM011", Role: models.StaffPilot, Name: "P2", Active: true})

	if current, err := store.Assignments.Current(ctx, o.ID); err != nil || current != nil {
		t.Fatalf("expected no assignment yet: %+v err=%v", current, err)
	}

	t0 := time.Now()
	if _, err := store.Assignments.Create(ctx, &models.Assignment{OrderID: o.ID, PilotID: &p1.ID, PilotName: p1.Name, CreatedAt: t0}); err != nil {
		t.Fatalf("assign p1: %v", err)
	}
	if _, err := store.Assignments.Create(ctx, &models.Assignment{OrderID: o.ID, PilotID: &p2.ID, PilotName: p2.Name, CreatedAt: t0.Add(time.Second)}); err != nil {
		t.Fatalf("assign p2: %v", err)
	}
	if _, err := store.Assignments.Create(ctx, &models.Assignment{OrderID: o.ID}); err == nil {
		t.Fatalf("expected error for assignment without staff")
	}

	current, err := store.Assignments.Current(ctx, o.ID)
	if err != nil || current == nil || current.PilotName != "P2" {
		t.Fatalf("current: %v %+v", err, current)
	}
	history, _ := store.Assignments.ListByOrder(ctx, o.ID)
	if len(history) != 2 {
		t.Fatalf("history len = %d, want 2", len(history))
	}

	forP1, err := store.Assignments.ListCurrentForStaff(ctx, p1.ID)
	if err != nil || len(forP1) != 0 {
		t.Fatalf("p1 should have no current assignment: %v len=%d", err, len(forP1))
	}
	forP2, err := store.Assignments.ListCurrentForStaff(ctx, p2.ID)
	if err != nil || len(forP2) != 1 {
		t.Fatalf("p2 current assignments: %v len=%d", err, len(forP2))
	}
}

func TestAssignmentRepository_Update(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "assignupdate")
	store := NewStore(d)
	ctx := context.Background()

	o, _ := store.Orders.Create(ctx, newTestOrder("ORD00000210", time.Now()))
	p, _ := store.Staff.Create(ctx, &models.Staff{Code: "PUN020", Role: models.StaffPilot, Name: "Pilot", Active: true})
	e, _ := store.Staff.Create(ctx, &models.Staff{Code: "EDT020", Role: models.StaffEditor, Name: "Editor", Active: true})

	a, err := store.Assignments.Create(ctx, &models.Assignment{OrderID: o.ID, PilotID: &p.ID, PilotName: p.Name, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a.EditorID, a.EditorName = &e.ID, e.Name
	if err := store.Assignments.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.Assignments.Current(ctx, o.ID)
	if err != nil || got == nil {
		t.Fatalf("current: %v %+v", err, got)
	}
	if got.EditorID == nil || *got.EditorID != e.ID || got.EditorName != "Editor" || got.PilotName != "Pilot" {
		t.Fatalf("unexpected assignment after update: %+v", got)
	}

	missing := *a
	missing.ID = "does-not-exist"
	if err := store.Assignments.Update(ctx, &missing); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for unknown id, got %v", err)
	}
	if err := store.Assignments.Update(ctx, nil); err == nil {
		t.Fatalf("expected error for nil assignment")
	}
}

func TestSubmissionRepository_ReviewOnlyOnce(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "subrepo")
	store := NewStore(d)
	ctx := context.Background()

	o, _ := store.Orders.Create(ctx, newTestOrder("ORD00000300", time.Now()))
	if _, err := store.Submissions.Create(ctx, &models.Submission{OrderID: o.ID, Role: models.StaffPilot, SubmitterID: "x"}); err == nil {
		t.Fatalf("expected error for empty drive link")
	}
	hours := 3.5
	s, err := store.Submissions.Create(ctx, &models.Submission{
		OrderID: o.ID, Role: models.StaffPilot, SubmitterID: "x", SubmitterName: "Ravi",
		DriveLink: "https://drive.example.com/raw", HoursWorked: &hours,
	})
	if err != nil {
		t.Fatalf("create submission: %v", err)
	}
	if err := store.Submissions.Review(ctx, s.ID, models.SubmissionApproved, "", "root", time.Now()); err != nil {
		t.Fatalf("review: %v", err)
	}
	if err := store.Submissions.Review(ctx, s.ID, models.SubmissionRejected, "late", "root", time.Now()); !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict on second review, got %v", err)
	}
	got, _ := store.Submissions.GetByID(ctx, s.ID)
	if got.Status != models.SubmissionApproved || got.ReviewedAt == nil || got.HoursWorked == nil || *got.HoursWorked != 3.5 {
		t.Fatalf("unexpected reviewed submission: %+v", got)
	}
}

func TestCommentRepository_NewestFirst(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "commentrepo")
	store := NewStore(d)
	ctx := context.Background()

	o, _ := store.Orders.Create(ctx, newTestOrder("ORD00000400", time.Now()))
	t0 := time.Date(2026, 10, 5, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		if _, err := store.Comments.Create(ctx, &models.Comment{
			OrderID: o.ID, AuthorRole: models.RoleAdmin, Text: text, CreatedAt: t0.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("create comment %d: %v", i, err)
		}
	}
	list, err := store.Comments.ListByOrder(ctx, o.ID)
	if err != nil || len(list) != 3 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	if list[0].Text != "third" || list[2].Text != "first" || list[0].Stage != models.StageGeneral {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestCancellationRepository_AdvanceForwardOnly(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "cancelrepo")
	store := NewStore(d)
	ctx := context.Background()

	o, _ := store.Orders.Create(ctx, newTestOrder("ORD00000500", time.Now()))
	c, err := store.Cancellations.Create(ctx, &models.Cancellation{
		OrderID: o.ID, OrderCode: o.OrderID, ClientName: o.ClientName, City: o.City, Reason: models.ReasonWeather,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Cancellations.Create(ctx, &models.Cancellation{OrderID: o.ID, OrderCode: o.OrderID, ClientName: "x", City: "y", Reason: models.ReasonOther}); !IsUniqueViolation(err) {
		t.Fatalf("expected one cancellation per order, got %v", err)
	}

	refund := 5000.0
	if err := store.Cancellations.AdvanceStatus(ctx, c.ID, models.CancellationCancelled, models.CancellationRefundInitiated, &refund, "refund via bank", time.Now()); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := store.Cancellations.AdvanceStatus(ctx, c.ID, models.CancellationCancelled, models.CancellationReassigned, nil, "", time.Now()); !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected conflict for stale from-status, got %v", err)
	}
	if err := store.Cancellations.AdvanceStatus(ctx, c.ID, models.CancellationRefundInitiated, models.CancellationRefundCompleted, nil, "", time.Now()); err != nil {
		t.Fatalf("complete refund: %v", err)
	}
	got, _ := store.Cancellations.GetByOrderID(ctx, o.ID)
	if got.Status != models.CancellationRefundCompleted || got.RefundAmount == nil || *got.RefundAmount != 5000 || got.AdminNotes != "refund via bank" {
		t.Fatalf("unexpected cancellation: %+v", got)
	}
}
