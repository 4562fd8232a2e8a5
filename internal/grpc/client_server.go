package grpcserver

import (
	"context"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	clientv1 "droneVideoOps/api/client/v1"
	"droneVideoOps/internal/auth"
	"droneVideoOps/internal/workflow"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// ClientServer implements client.v1.ClientService. Clients only see their own orders.
type ClientServer struct {
	clientv1.UnimplementedClientServiceServer
	Store    *repository.Store
	Workflow *workflow.Service
}

func (s *ClientServer) client(ctx context.Context) (workflow.Actor, *models.User, error) {
	_, u, err := auth.RequireClient(ctx, s.Store.Users)
	if err != nil {
		return workflow.Actor{}, nil, err
	}
	return workflow.Actor{Role: models.RoleClient, ID: strconv.FormatInt(u.ID, 10), Name: u.Username}, u, nil
}

// owned loads an order and checks it belongs to u.
func (s *ClientServer) owned(ctx context.Context, u *models.User, ref string) (*models.Order, error) {
	if blank(ref) {
		return nil, errOrderIDRequired
	}
	o, err := s.Workflow.GetOrder(ctx, ref)
	if err != nil {
		return nil, toStatus(err)
	}
	if o.ClientID == nil || *o.ClientID != u.ID {
		return nil, status.Error(codes.PermissionDenied, "order belongs to another client")
	}
	return o, nil
}

func (s *ClientServer) PlaceOrder(ctx context.Context, req *clientv1.PlaceOrderRequest) (*clientv1.OrderResponse, error) {
	actor, u, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &clientv1.PlaceOrderRequest{}
	}
	clientID := u.ID
	o, err := s.Workflow.CreateOrder(ctx, actor, workflow.OrderInput{
		ClientID:      &clientID,
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
	return &clientv1.OrderResponse{Order: o}, nil
}

func (s *ClientServer) ListMyOrders(ctx context.Context, _ *clientv1.ListMyOrdersRequest) (*clientv1.ListMyOrdersResponse, error) {
	_, u, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.Workflow.ListClientOrders(ctx, u.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clientv1.ListMyOrdersResponse{Orders: list}, nil
}

func (s *ClientServer) GetMyOrder(ctx context.Context, req *clientv1.GetMyOrderRequest) (*clientv1.GetMyOrderResponse, error) {
	_, u, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errOrderIDRequired
	}
	o, err := s.owned(ctx, u, req.OrderId)
	if err != nil {
		return nil, err
	}
	comments, err := s.Workflow.ListComments(ctx, o.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clientv1.GetMyOrderResponse{Order: o, Comments: comments}, nil
}

func (s *ClientServer) AddFeedback(ctx context.Context, req *clientv1.FeedbackRequest) (*clientv1.CommentResponse, error) {
	actor, u, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errOrderIDRequired
	}
	o, err := s.owned(ctx, u, req.OrderId)
	if err != nil {
		return nil, err
	}
	c, err := s.Workflow.AddComment(ctx, actor, o.ID, models.StageClientFeedback, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clientv1.CommentResponse{Comment: c}, nil
}

// RequestRevision sends an order in final review back to editing.
func (s *ClientServer) RequestRevision(ctx context.Context, req *clientv1.FeedbackRequest) (*clientv1.OrderResponse, error) {
	actor, u, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errOrderIDRequired
	}
	o, err := s.owned(ctx, u, req.OrderId)
	if err != nil {
		return nil, err
	}
	o, err = s.Workflow.RequestRevision(ctx, actor, o.ID, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clientv1.OrderResponse{Order: o}, nil
}

func (s *ClientServer) ListComments(ctx context.Context, req *clientv1.ListCommentsRequest) (*clientv1.ListCommentsResponse, error) {
	_, u, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errOrderIDRequired
	}
	o, err := s.owned(ctx, u, req.OrderId)
	if err != nil {
		return nil, err
	}
	list, err := s.Workflow.ListComments(ctx, o.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &clientv1.ListCommentsResponse{Comments: list}, nil
}
