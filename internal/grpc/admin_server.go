package grpcserver

import (
	"context"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	adminv1 "droneVideoOps/api/admin/v1"
	"droneVideoOps/internal/auth"
	"droneVideoOps/internal/workflow"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// AdminServer implements admin.v1.AdminService.
type AdminServer struct {
	adminv1.UnimplementedAdminServiceServer
	Store    *repository.Store
	Workflow *workflow.Service
}

// admin authenticates the caller against the users table.
func (s *AdminServer) admin(ctx context.Context) (workflow.Actor, error) {
	_, u, err := auth.RequireAdmin(ctx, s.Store.Users)
	if err != nil {
		return workflow.Actor{}, err
	}
	return workflow.Actor{Role: models.RoleAdmin, ID: strconv.FormatInt(u.ID, 10), Name: u.Username}, nil
}

var errOrderIDRequired = status.Error(codes.InvalidArgument, "order_id is required")

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (s *AdminServer) CreateOrder(ctx context.Context, req *adminv1.CreateOrderRequest) (*adminv1.OrderResponse, error) {
	actor, err := s.admin(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &adminv1.CreateOrderRequest{}
	}
	o, err := s.Workflow.CreateOrder(ctx, actor, workflow.OrderInput{
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		City:          req.City,
		Location:      req.Location,
		ShootDate:     req.ShootDate,
		Package:       models.PackageType(req.Package),
		Amount:        req.Amount,
		Requirements:  req.Requirements,
		ReferenceLink: req.ReferenceLink,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.OrderResponse{Order: o}, nil
}

// ListOrders lists orders with optional filters and cursor pagination.
func (s *AdminServer) ListOrders(ctx context.Context, req *adminv1.ListOrdersRequest) (*adminv1.ListOrdersResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	if req == nil {
		req = &adminv1.ListOrdersRequest{}
	}
	p := repository.ListOrdersParams{City: req.City, PageSize: clampPageSize(req.PageSize)}
	for _, st := range req.Statuses {
		p.Statuses = append(p.Statuses, models.OrderStatus(strings.ToLower(strings.TrimSpace(st))))
	}
	if !blank(req.PageToken) {
		after, id, err := decodeCursor(req.PageToken)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid page_token: %v", err)
		}
		p.AfterCreated, p.AfterID = after, id
	}

	list, err := s.Workflow.ListOrders(ctx, p)
	if err != nil {
		return nil, toStatus(err)
	}
	next := ""
	if len(list) == p.PageSize {
		last := list[len(list)-1]
		next = encodeCursor(last.CreatedAt, last.ID)
	}
	return &adminv1.ListOrdersResponse{Orders: list, NextPageToken: next}, nil
}

func (s *AdminServer) GetOrder(ctx context.Context, req *adminv1.GetOrderRequest) (*adminv1.GetOrderResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	d, err := s.Workflow.GetOrderDetail(ctx, req.OrderId)
	if err != nil {
		return nil, toStatus(err)
	}
	actions := make([]string, 0, len(d.Actions))
	for _, ev := range d.Actions {
		actions = append(actions, string(ev))
	}
	return &adminv1.GetOrderResponse{
		Order:          &d.Order,
		Assignment:     d.Assignment,
		Submissions:    d.Submissions,
		Comments:       d.Comments,
		Cancellation:   d.Cancellation,
		AllowedActions: actions,
	}, nil
}

func (s *AdminServer) UpdateOrder(ctx context.Context, req *adminv1.UpdateOrderRequest) (*adminv1.OrderResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	patch := workflow.OrderPatch{
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		City:          req.City,
		Location:      req.Location,
		ShootDate:     req.ShootDate,
		Amount:        req.Amount,
		Requirements:  req.Requirements,
		ReferenceLink: req.ReferenceLink,
	}
	if req.Package != nil {
		pkg := models.PackageType(*req.Package)
		patch.Package = &pkg
	}
	o, err := s.Workflow.UpdateOrderDetails(ctx, req.OrderId, patch)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.OrderResponse{Order: o}, nil
}

func (s *AdminServer) DeleteOrder(ctx context.Context, req *adminv1.DeleteOrderRequest) (*adminv1.DeleteOrderResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	if err := s.Workflow.DeleteOrder(ctx, req.OrderId); err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.DeleteOrderResponse{}, nil
}

type orderAction func(ctx context.Context, actor workflow.Actor, ref, comment string) (*models.Order, error)

func (s *AdminServer) orderAction(ctx context.Context, req *adminv1.OrderActionRequest, act orderAction) (*adminv1.OrderResponse, error) {
	actor, err := s.admin(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	o, err := act(ctx, actor, req.OrderId, req.Comment)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.OrderResponse{Order: o}, nil
}

func (s *AdminServer) ApproveOrder(ctx context.Context, req *adminv1.OrderActionRequest) (*adminv1.OrderResponse, error) {
	return s.orderAction(ctx, req, s.Workflow.ApproveOrder)
}

func (s *AdminServer) RejectOrder(ctx context.Context, req *adminv1.OrderActionRequest) (*adminv1.OrderResponse, error) {
	return s.orderAction(ctx, req, s.Workflow.RejectOrder)
}

func (s *AdminServer) RequestInfo(ctx context.Context, req *adminv1.OrderActionRequest) (*adminv1.OrderResponse, error) {
	return s.orderAction(ctx, req, s.Workflow.RequestInfo)
}

func (s *AdminServer) SendToFinalReview(ctx context.Context, req *adminv1.OrderActionRequest) (*adminv1.OrderResponse, error) {
	return s.orderAction(ctx, req, s.Workflow.SendToFinalReview)
}

func (s *AdminServer) Complete(ctx context.Context, req *adminv1.OrderActionRequest) (*adminv1.OrderResponse, error) {
	return s.orderAction(ctx, req, s.Workflow.Complete)
}

func (s *AdminServer) AssignStaff(ctx context.Context, req *adminv1.AssignStaffRequest) (*adminv1.AssignmentResponse, error) {
	actor, err := s.admin(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	a, err := s.Workflow.Assign(ctx, actor, workflow.AssignInput{OrderID: req.OrderId, PilotID: req.PilotId, EditorID: req.EditorId})
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.AssignmentResponse{Assignment: a}, nil
}

func (s *AdminServer) ReviewSubmission(ctx context.Context, req *adminv1.ReviewSubmissionRequest) (*adminv1.SubmissionResponse, error) {
	actor, err := s.admin(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || blank(req.SubmissionId) {
		return nil, status.Error(codes.InvalidArgument, "submission_id is required")
	}
	sub, err := s.Workflow.ReviewSubmission(ctx, actor, req.SubmissionId, req.Approve, req.Comment)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.SubmissionResponse{Submission: sub}, nil
}

func (s *AdminServer) CancelOrder(ctx context.Context, req *adminv1.CancelOrderRequest) (*adminv1.CancellationResponse, error) {
	actor, err := s.admin(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	c, err := s.Workflow.Cancel(ctx, actor, workflow.CancelInput{
		OrderID:      req.OrderId,
		Reason:       models.CancellationReason(req.Reason),
		RefundAmount: req.RefundAmount,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.CancellationResponse{Cancellation: c}, nil
}

func (s *AdminServer) cancellationAction(ctx context.Context, req *adminv1.CancellationActionRequest, act func(workflow.Actor, string) (*models.Cancellation, error)) (*adminv1.CancellationResponse, error) {
	actor, err := s.admin(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || blank(req.CancellationId) {
		return nil, status.Error(codes.InvalidArgument, "cancellation_id is required")
	}
	c, err := act(actor, req.CancellationId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.CancellationResponse{Cancellation: c}, nil
}

func (s *AdminServer) ReassignCancellation(ctx context.Context, req *adminv1.CancellationActionRequest) (*adminv1.CancellationResponse, error) {
	return s.cancellationAction(ctx, req, func(actor workflow.Actor, id string) (*models.Cancellation, error) {
		return s.Workflow.ReassignCancellation(ctx, actor, id, req.Notes)
	})
}

func (s *AdminServer) InitiateRefund(ctx context.Context, req *adminv1.CancellationActionRequest) (*adminv1.CancellationResponse, error) {
	return s.cancellationAction(ctx, req, func(actor workflow.Actor, id string) (*models.Cancellation, error) {
		return s.Workflow.InitiateRefund(ctx, actor, id, req.RefundAmount, req.Notes)
	})
}

func (s *AdminServer) MarkCancellationHandled(ctx context.Context, req *adminv1.CancellationActionRequest) (*adminv1.CancellationResponse, error) {
	return s.cancellationAction(ctx, req, func(actor workflow.Actor, id string) (*models.Cancellation, error) {
		return s.Workflow.MarkHandled(ctx, actor, id, req.Notes)
	})
}

func (s *AdminServer) ListCancellations(ctx context.Context, _ *adminv1.ListCancellationsRequest) (*adminv1.ListCancellationsResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	list, err := s.Workflow.ListCancellations(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.ListCancellationsResponse{Cancellations: list}, nil
}

func (s *AdminServer) CreateStaff(ctx context.Context, req *adminv1.CreateStaffRequest) (*adminv1.StaffResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	if req == nil {
		req = &adminv1.CreateStaffRequest{}
	}
	st, err := s.Workflow.CreateStaff(ctx, workflow.StaffInput{
		Role:     models.StaffRole(req.Role),
		Name:     req.Name,
		Phone:    req.Phone,
		City:     req.City,
		Username: req.Username,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.StaffResponse{Staff: st}, nil
}

func (s *AdminServer) ListStaff(ctx context.Context, req *adminv1.ListStaffRequest) (*adminv1.ListStaffResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	if req == nil {
		req = &adminv1.ListStaffRequest{}
	}
	role := models.StaffRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if role != "" && role != models.StaffPilot && role != models.StaffEditor {
		return nil, status.Errorf(codes.InvalidArgument, "unknown staff role %q", req.Role)
	}
	list, err := s.Workflow.ListStaff(ctx, role, req.ActiveOnly)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.ListStaffResponse{Staff: list}, nil
}

func (s *AdminServer) SetStaffActive(ctx context.Context, req *adminv1.SetStaffActiveRequest) (*adminv1.StaffResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	if req == nil || blank(req.StaffId) {
		return nil, status.Error(codes.InvalidArgument, "staff_id is required")
	}
	st, err := s.Workflow.SetStaffActive(ctx, req.StaffId, req.Active)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.StaffResponse{Staff: st}, nil
}

func (s *AdminServer) AddComment(ctx context.Context, req *adminv1.AddCommentRequest) (*adminv1.CommentResponse, error) {
	actor, err := s.admin(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	c, err := s.Workflow.AddComment(ctx, actor, req.OrderId, models.CommentStage(req.Stage), req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.CommentResponse{Comment: c}, nil
}

func (s *AdminServer) ListComments(ctx context.Context, req *adminv1.ListCommentsRequest) (*adminv1.ListCommentsResponse, error) {
	if _, err := s.admin(ctx); err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	list, err := s.Workflow.ListComments(ctx, req.OrderId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminv1.ListCommentsResponse{Comments: list}, nil
}
