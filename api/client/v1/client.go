// Package clientv1 defines client.v1.ClientService, the customer portal API.
package clientv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/api/wire"
	"droneVideoOps/models"
)

const ServiceName = "client.v1.ClientService"

type PlaceOrderRequest struct {
	ClientName    string  `json:"client_name"`
	ClientPhone   string  `json:"client_phone"`
	City          string  `json:"city"`
	Location      string  `json:"location,omitempty"`
	ShootDate     string  `json:"shoot_date,omitempty"`
	Package       string  `json:"package"`
	Amount        float64 `json:"amount"`
	Requirements  string  `json:"requirements"`
	ReferenceLink string  `json:"reference_link,omitempty"`
}

type OrderResponse struct {
	Order *models.Order `json:"order"`
}

type ListMyOrdersRequest struct{}

type ListMyOrdersResponse struct {
	Orders []models.Order `json:"orders"`
}

type GetMyOrderRequest struct {
	OrderId string `json:"order_id"`
}

// GetMyOrderResponse omits staff-internal details such as submissions.
type GetMyOrderResponse struct {
	Order    *models.Order    `json:"order"`
	Comments []models.Comment `json:"comments,omitempty"`
}

// FeedbackRequest carries a client's message about an order.
type FeedbackRequest struct {
	OrderId string `json:"order_id"`
	Text    string `json:"text"`
}

type CommentResponse struct {
	Comment *models.Comment `json:"comment"`
}

type ListCommentsRequest struct {
	OrderId string `json:"order_id"`
}

type ListCommentsResponse struct {
	Comments []models.Comment `json:"comments"`
}

// ClientServiceServer is the server API for client.v1.ClientService.
type ClientServiceServer interface {
	PlaceOrder(context.Context, *PlaceOrderRequest) (*OrderResponse, error)
	ListMyOrders(context.Context, *ListMyOrdersRequest) (*ListMyOrdersResponse, error)
	GetMyOrder(context.Context, *GetMyOrderRequest) (*GetMyOrderResponse, error)
	AddFeedback(context.Context, *FeedbackRequest) (*CommentResponse, error)
	RequestRevision(context.Context, *FeedbackRequest) (*OrderResponse, error)
	ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error)
}

// UnimplementedClientServiceServer can be embedded to have forward compatible implementations.
type UnimplementedClientServiceServer struct{}

func (UnimplementedClientServiceServer) PlaceOrder(context.Context, *PlaceOrderRequest) (*OrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PlaceOrder not implemented")
}
func (UnimplementedClientServiceServer) ListMyOrders(context.Context, *ListMyOrdersRequest) (*ListMyOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyOrders not implemented")
}
func (UnimplementedClientServiceServer) GetMyOrder(context.Context, *GetMyOrderRequest) (*GetMyOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMyOrder not implemented")
}
func (UnimplementedClientServiceServer) AddFeedback(context.Context, *FeedbackRequest) (*CommentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddFeedback not implemented")
}
func (UnimplementedClientServiceServer) RequestRevision(context.Context, *FeedbackRequest) (*OrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestRevision not implemented")
}
func (UnimplementedClientServiceServer) ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListComments not implemented")
}

// ClientService_ServiceDesc is the grpc.ServiceDesc for client.v1.ClientService.
var ClientService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClientServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		wire.Method(ServiceName, "PlaceOrder", ClientServiceServer.PlaceOrder),
		wire.Method(ServiceName, "ListMyOrders", ClientServiceServer.ListMyOrders),
		wire.Method(ServiceName, "GetMyOrder", ClientServiceServer.GetMyOrder),
		wire.Method(ServiceName, "AddFeedback", ClientServiceServer.AddFeedback),
		wire.Method(ServiceName, "RequestRevision", ClientServiceServer.RequestRevision),
		wire.Method(ServiceName, "ListComments", ClientServiceServer.ListComments),
	},
	Metadata: "client/v1/client.go",
}

func RegisterClientServiceServer(s grpc.ServiceRegistrar, srv ClientServiceServer) {
	s.RegisterService(&ClientService_ServiceDesc, srv)
}

// ClientServiceClient is a thin typed client for client.v1.ClientService.
type ClientServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewClientServiceClient(cc grpc.ClientConnInterface) *ClientServiceClient {
	return &ClientServiceClient{cc: cc}
}

func (c *ClientServiceClient) PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, "/"+ServiceName+"/PlaceOrder", in, opts...)
}
func (c *ClientServiceClient) ListMyOrders(ctx context.Context, in *ListMyOrdersRequest, opts ...grpc.CallOption) (*ListMyOrdersResponse, error) {
	return wire.Invoke[ListMyOrdersResponse](ctx, c.cc, "/"+ServiceName+"/ListMyOrders", in, opts...)
}
func (c *ClientServiceClient) GetMyOrder(ctx context.Context, in *GetMyOrderRequest, opts ...grpc.CallOption) (*GetMyOrderResponse, error) {
	return wire.Invoke[GetMyOrderResponse](ctx, c.cc, "/"+ServiceName+"/GetMyOrder", in, opts...)
}
func (c *ClientServiceClient) AddFeedback(ctx context.Context, in *FeedbackRequest, opts ...grpc.CallOption) (*CommentResponse, error) {
	return wire.Invoke[CommentResponse](ctx, c.cc, "/"+ServiceName+"/AddFeedback", in, opts...)
}
func (c *ClientServiceClient) RequestRevision(ctx context.Context, in *FeedbackRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, "/"+ServiceName+"/RequestRevision", in, opts...)
}
func (c *ClientServiceClient) ListComments(ctx context.Context, in *ListCommentsRequest, opts ...grpc.CallOption) (*ListCommentsResponse, error) {
	return wire.Invoke[ListCommentsResponse](ctx, c.cc, "/"+ServiceName+"/ListComments", in, opts...)
}
