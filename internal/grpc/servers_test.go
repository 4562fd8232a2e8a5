package grpcserver

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	adminv1 "droneVideoOps/api/admin/v1"
	clientv1 "droneVideoOps/api/client/v1"
	staffv1 "droneVideoOps/api/staff/v1"
	"droneVideoOps/internal/auth"
	"droneVideoOps/internal/testutil"
	"droneVideoOps/internal/workflow"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

type testEnv struct {
	store  *repository.Store
	wf     *workflow.Service
	admin  *AdminServer
	client *ClientServer
	staff  *StaffServer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := "grpc_" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store := repository.NewStore(testutil.OpenInMemoryDB(t, name))

	var mu sync.Mutex
	tick := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	wf := workflow.New(store, workflow.WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Second)
		return tick
	}))

	env := &testEnv{
		store:  store,
		wf:     wf,
		admin:  &AdminServer{Store: store, Workflow: wf},
		client: &ClientServer{Store: store, Workflow: wf},
		staff:  &StaffServer{Store: store, Workflow: wf},
	}
	env.user(t, "root", models.RoleAdmin)
	env.user(t, "asha", models.RoleClient)
	env.user(t, "vik", models.RoleClient)
	return env
}

func (e *testEnv) user(t *testing.T, username string, role models.Role) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := e.store.Users.Create(ctx, username, role); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
}

func as(name, kind string) context.Context {
	return auth.WithPrincipal(context.Background(), &auth.Principal{Name: name, Kind: kind})
}

func wantCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", want)
	}
	if got := status.Code(err); got != want {
		t.Fatalf("expected %v, got %v (%v)", want, got, err)
	}
}

func placeOrderRequest() *clientv1.PlaceOrderRequest {
	return &clientv1.PlaceOrderRequest{
		ClientName:   "Asha Rao",
		ClientPhone:  "+91 98765 43210",
		City:         "Mumbai",
		Location:     "Bandra Fort",
		ShootDate:    "2026-11-14",
		Package:      "premium",
		Amount:       42000,
		Requirements: "Wedding aerials at golden hour",
	}
}

func (e *testEnv) createStaff(t *testing.T, role, name, username string) *models.Staff {
	t.Helper()
	resp, err := e.admin.CreateStaff(as("root", auth.KindAdmin), &adminv1.CreateStaffRequest{
		Role: role, Name: name, City: "Mumbai", Username: username,
	})
	if err != nil {
		t.Fatalf("create staff %s: %v", username, err)
	}
	return resp.Staff
}

func TestAdminAuth_SpoofRejected(t *testing.T) {
	env := newTestEnv(t)

	// A client login that forges kind=admin is still rejected by the users table.
	_, err := env.admin.ListCancellations(as("asha", auth.KindAdmin), &adminv1.ListCancellationsRequest{})
	wantCode(t, err, codes.PermissionDenied)

	_, err = env.admin.ListCancellations(as("asha", auth.KindClient), &adminv1.ListCancellationsRequest{})
	wantCode(t, err, codes.PermissionDenied)

	_, err = env.admin.ListCancellations(context.Background(), &adminv1.ListCancellationsRequest{})
	wantCode(t, err, codes.Unauthenticated)
}

func TestAdmin_CreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := as("root", auth.KindAdmin)

	_, err := env.admin.CreateOrder(ctx, &adminv1.CreateOrderRequest{
		ClientName: "Asha", ClientPhone: "+919876543210", City: "Pune",
		Package: "basic", Amount: 0, Requirements: "Roof inspection",
	})
	wantCode(t, err, codes.InvalidArgument)
	if !strings.Contains(status.Convert(err).Message(), "Amount must be greater than 0") {
		t.Fatalf("unexpected message: %s", status.Convert(err).Message())
	}

	resp, err := env.admin.CreateOrder(ctx, &adminv1.CreateOrderRequest{
		ClientName: "Asha", ClientPhone: "+919876543210", City: "Pune",
		Package: "basic", Amount: 5000, Requirements: "Roof inspection",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if resp.Order.Status != models.OrderStatusNew {
		t.Fatalf("expected new, got %s", resp.Order.Status)
	}
}

func TestClient_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)

	placed, err := env.client.PlaceOrder(as("asha", auth.KindClient), placeOrderRequest())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if placed.Order.Status != models.OrderStatusPending {
		t.Fatalf("expected pending, got %s", placed.Order.Status)
	}

	_, err = env.client.GetMyOrder(as("vik", auth.KindClient), &clientv1.GetMyOrderRequest{OrderId: placed.Order.OrderID})
	wantCode(t, err, codes.PermissionDenied)

	_, err = env.client.GetMyOrder(as("asha", auth.KindClient), &clientv1.GetMyOrderRequest{OrderId: "ORD-NOPE"})
	wantCode(t, err, codes.NotFound)

	mine, err := env.client.ListMyOrders(as("asha", auth.KindClient), &clientv1.ListMyOrdersRequest{})
	if err != nil {
		t.Fatalf("list my orders: %v", err)
	}
	if len(mine.Orders) != 1 || mine.Orders[0].ID != placed.Order.ID {
		t.Fatalf("unexpected orders: %+v", mine.Orders)
	}
	theirs, err := env.client.ListMyOrders(as("vik", auth.KindClient), &clientv1.ListMyOrdersRequest{})
	if err != nil {
		t.Fatalf("list my orders: %v", err)
	}
	if len(theirs.Orders) != 0 {
		t.Fatalf("expected no orders for vik, got %d", len(theirs.Orders))
	}
}

func TestFullLifecycleThroughPortals(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := as("root", auth.KindAdmin)
	clientCtx := as("asha", auth.KindClient)
	pilotCtx := as("pia", auth.KindPilot)
	editorCtx := as("eli", auth.KindEditor)

	placed, err := env.client.PlaceOrder(clientCtx, placeOrderRequest())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	ref := placed.Order.OrderID

	if _, err := env.admin.RejectOrder(adminCtx, &adminv1.OrderActionRequest{OrderId: ref}); err == nil {
		t.Fatalf("expected reject without comment to fail")
	} else {
		wantCode(t, err, codes.InvalidArgument)
	}
	if _, err := env.admin.ApproveOrder(adminCtx, &adminv1.OrderActionRequest{OrderId: ref}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	pilot := env.createStaff(t, "pilot", "Pia Nair", "pia")
	editor := env.createStaff(t, "editor", "Eli Dsouza", "eli")

	// Not yet assigned: the pilot cannot read the timeline.
	_, err = env.staff.ListComments(pilotCtx, &staffv1.ListCommentsRequest{OrderId: ref})
	wantCode(t, err, codes.PermissionDenied)

	assigned, err := env.admin.AssignStaff(adminCtx, &adminv1.AssignStaffRequest{OrderId: ref, PilotId: pilot.ID, EditorId: editor.ID})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.Assignment.PilotName != "Pia Nair" || assigned.Assignment.EditorName != "Eli Dsouza" {
		t.Fatalf("unexpected assignment names: %+v", assigned.Assignment)
	}

	jobs, err := env.staff.ListMyAssignments(pilotCtx, &staffv1.ListMyAssignmentsRequest{})
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(jobs.Jobs) != 1 || jobs.Jobs[0].Order.OrderID != ref {
		t.Fatalf("unexpected jobs: %+v", jobs.Jobs)
	}

	// The editor cannot submit before the footage is reviewed.
	_, err = env.staff.SubmitDeliverable(editorCtx, &staffv1.SubmitDeliverableRequest{OrderId: ref, DriveLink: "https://drive.example.com/edit"})
	wantCode(t, err, codes.FailedPrecondition)

	raw, err := env.staff.SubmitDeliverable(pilotCtx, &staffv1.SubmitDeliverableRequest{
		OrderId: ref, DriveLink: "https://drive.example.com/raw", Comments: "All angles covered",
	})
	if err != nil {
		t.Fatalf("pilot submit: %v", err)
	}
	if _, err := env.admin.ReviewSubmission(adminCtx, &adminv1.ReviewSubmissionRequest{SubmissionId: raw.Submission.ID, Approve: true}); err != nil {
		t.Fatalf("approve raw: %v", err)
	}

	cut, err := env.staff.SubmitDeliverable(editorCtx, &staffv1.SubmitDeliverableRequest{OrderId: ref, DriveLink: "https://drive.example.com/cut-1"})
	if err != nil {
		t.Fatalf("editor submit: %v", err)
	}
	rejected, err := env.admin.ReviewSubmission(adminCtx, &adminv1.ReviewSubmissionRequest{SubmissionId: cut.Submission.ID, Comment: "Colour grade is off"})
	if err != nil {
		t.Fatalf("reject cut: %v", err)
	}
	if rejected.Submission.Status != models.SubmissionRejected {
		t.Fatalf("expected rejected, got %s", rejected.Submission.Status)
	}
	recut, err := env.staff.ResubmitDeliverable(editorCtx, &staffv1.ResubmitDeliverableRequest{
		PreviousSubmissionId: cut.Submission.ID, DriveLink: "https://drive.example.com/cut-2",
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if recut.Submission.PreviousID == nil || *recut.Submission.PreviousID != cut.Submission.ID {
		t.Fatalf("resubmission not linked: %+v", recut.Submission)
	}
	if _, err := env.admin.ReviewSubmission(adminCtx, &adminv1.ReviewSubmissionRequest{SubmissionId: recut.Submission.ID, Approve: true}); err != nil {
		t.Fatalf("approve cut: %v", err)
	}

	if _, err := env.admin.SendToFinalReview(adminCtx, &adminv1.OrderActionRequest{OrderId: ref}); err != nil {
		t.Fatalf("final review: %v", err)
	}
	revised, err := env.client.RequestRevision(clientCtx, &clientv1.FeedbackRequest{OrderId: ref, Text: "Shorter intro please"})
	if err != nil {
		t.Fatalf("request revision: %v", err)
	}
	if revised.Order.Status != models.OrderStatusEditing {
		t.Fatalf("expected editing, got %s", revised.Order.Status)
	}

	final, err := env.staff.SubmitDeliverable(editorCtx, &staffv1.SubmitDeliverableRequest{OrderId: ref, DriveLink: "https://drive.example.com/cut-3"})
	if err != nil {
		t.Fatalf("editor resubmit after revision: %v", err)
	}
	if _, err := env.admin.ReviewSubmission(adminCtx, &adminv1.ReviewSubmissionRequest{SubmissionId: final.Submission.ID, Approve: true}); err != nil {
		t.Fatalf("approve final cut: %v", err)
	}
	done, err := env.admin.Complete(adminCtx, &adminv1.OrderActionRequest{OrderId: ref, Comment: "Delivered"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Order.Status != models.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", done.Order.Status)
	}
	if done.Order.DriveLink != "https://drive.example.com/cut-3" {
		t.Fatalf("expected approved edit on order, got %q", done.Order.DriveLink)
	}

	subs, err := env.staff.ListSubmissions(editorCtx, &staffv1.ListSubmissionsRequest{OrderId: ref})
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(subs.Submissions) != 4 {
		t.Fatalf("expected 4 submissions, got %d", len(subs.Submissions))
	}

	detail, err := env.client.GetMyOrder(clientCtx, &clientv1.GetMyOrderRequest{OrderId: ref})
	if err != nil {
		t.Fatalf("get my order: %v", err)
	}
	var feedback int
	for _, c := range detail.Comments {
		if c.Stage == models.StageClientFeedback {
			feedback++
		}
	}
	if feedback != 1 {
		t.Fatalf("expected one client feedback comment, got %d", feedback)
	}

	_, err = env.admin.UpdateOrder(adminCtx, &adminv1.UpdateOrderRequest{OrderId: ref, City: ptr("Pune")})
	wantCode(t, err, codes.FailedPrecondition)
}

func TestStaff_CommentStageFollowsRole(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := as("root", auth.KindAdmin)

	order, err := env.admin.CreateOrder(adminCtx, &adminv1.CreateOrderRequest{
		ClientName: "Ravi", ClientPhone: "+919812345678", City: "Mumbai",
		Package: "standard", Amount: 12000, Requirements: "Factory walkthrough",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := env.admin.ApproveOrder(adminCtx, &adminv1.OrderActionRequest{OrderId: order.Order.ID}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	pilot := env.createStaff(t, "pilot", "Pia Nair", "pia")
	if _, err := env.admin.AssignStaff(adminCtx, &adminv1.AssignStaffRequest{OrderId: order.Order.ID, PilotId: pilot.Code}); err != nil {
		t.Fatalf("assign by code: %v", err)
	}

	c, err := env.staff.AddComment(as("pia", auth.KindPilot), &staffv1.AddCommentRequest{OrderId: order.Order.ID, Text: "Wind looks fine for Saturday"})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if c.Comment.Stage != models.StagePilotSubmission || c.Comment.AuthorRole != models.RolePilot {
		t.Fatalf("unexpected comment: %+v", c.Comment)
	}

	// Deactivated staff are locked out.
	if _, err := env.admin.SetStaffActive(adminCtx, &adminv1.SetStaffActiveRequest{StaffId: pilot.ID, Active: false}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err = env.staff.ListMyAssignments(as("pia", auth.KindPilot), &staffv1.ListMyAssignmentsRequest{})
	wantCode(t, err, codes.PermissionDenied)

	// A token kind that does not match the staff role is rejected.
	_, err = env.staff.ListMyAssignments(as("pia", auth.KindEditor), &staffv1.ListMyAssignmentsRequest{})
	wantCode(t, err, codes.PermissionDenied)
}

func TestAdmin_CancelFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := as("root", auth.KindAdmin)

	order, err := env.admin.CreateOrder(ctx, &adminv1.CreateOrderRequest{
		ClientName: "Meera", ClientPhone: "+919800011122", City: "Goa",
		Package: "basic", Amount: 8000, Requirements: "Beach villa",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	_, err = env.admin.CancelOrder(ctx, &adminv1.CancelOrderRequest{OrderId: order.Order.ID, Reason: "volcano"})
	wantCode(t, err, codes.InvalidArgument)

	c, err := env.admin.CancelOrder(ctx, &adminv1.CancelOrderRequest{OrderId: order.Order.ID, Reason: "weather", Notes: "Monsoon"})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if c.Cancellation.Status != models.CancellationCancelled {
		t.Fatalf("expected cancelled, got %s", c.Cancellation.Status)
	}

	amount := 4000.0
	refund, err := env.admin.InitiateRefund(ctx, &adminv1.CancellationActionRequest{CancellationId: c.Cancellation.ID, RefundAmount: &amount})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refund.Cancellation.Status != models.CancellationRefundInitiated {
		t.Fatalf("expected refund_initiated, got %s", refund.Cancellation.Status)
	}
	_, err = env.admin.ReassignCancellation(ctx, &adminv1.CancellationActionRequest{CancellationId: c.Cancellation.ID})
	wantCode(t, err, codes.FailedPrecondition)

	if _, err := env.admin.MarkCancellationHandled(ctx, &adminv1.CancellationActionRequest{CancellationId: c.Cancellation.ID}); err != nil {
		t.Fatalf("mark handled: %v", err)
	}
	list, err := env.admin.ListCancellations(ctx, &adminv1.ListCancellationsRequest{})
	if err != nil {
		t.Fatalf("list cancellations: %v", err)
	}
	if len(list.Cancellations) != 1 || list.Cancellations[0].Status != models.CancellationRefundCompleted {
		t.Fatalf("unexpected cancellations: %+v", list.Cancellations)
	}

	_, err = env.admin.ApproveOrder(ctx, &adminv1.OrderActionRequest{OrderId: order.Order.ID})
	wantCode(t, err, codes.FailedPrecondition)
}

func TestAdmin_ListOrdersPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := as("root", auth.KindAdmin)

	for i, city := range []string{"Pune", "Pune", "Delhi"} {
		_, err := env.admin.CreateOrder(ctx, &adminv1.CreateOrderRequest{
			ClientName: "Client", ClientPhone: "+919800000000", City: city,
			Package: "basic", Amount: float64(1000 * (i + 1)), Requirements: "Site survey",
		})
		if err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
	}

	first, err := env.admin.ListOrders(ctx, &adminv1.ListOrdersRequest{PageSize: 2})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(first.Orders) != 2 || first.NextPageToken == "" {
		t.Fatalf("unexpected first page: %d orders, token %q", len(first.Orders), first.NextPageToken)
	}
	second, err := env.admin.ListOrders(ctx, &adminv1.ListOrdersRequest{PageSize: 2, PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(second.Orders) != 1 || second.NextPageToken != "" {
		t.Fatalf("unexpected second page: %d orders, token %q", len(second.Orders), second.NextPageToken)
	}
	seen := map[string]bool{}
	for _, o := range append(first.Orders, second.Orders...) {
		if seen[o.ID] {
			t.Fatalf("order %s listed twice", o.ID)
		}
		seen[o.ID] = true
	}

	pune, err := env.admin.ListOrders(ctx, &adminv1.ListOrdersRequest{City: "Pune", Statuses: []string{"new"}})
	if err != nil {
		t.Fatalf("list by city: %v", err)
	}
	if len(pune.Orders) != 2 {
		t.Fatalf("expected 2 Pune orders, got %d", len(pune.Orders))
	}

	_, err = env.admin.ListOrders(ctx, &adminv1.ListOrdersRequest{PageToken: "%%%"})
	wantCode(t, err, codes.InvalidArgument)
	_, err = env.admin.ListOrders(ctx, &adminv1.ListOrdersRequest{Statuses: []string{"shipped"}})
	wantCode(t, err, codes.InvalidArgument)
}

func ptr[T any](v T) *T { return &v }
