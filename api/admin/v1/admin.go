// Package adminv1 defines admin.v1.AdminService, the operations console API.
package adminv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/api/wire"
	"droneVideoOps/models"
)

const ServiceName = "admin.v1.AdminService"

type CreateOrderRequest struct {
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

type ListOrdersRequest struct {
	Statuses  []string `json:"statuses,omitempty"`
	City      string   `json:"city,omitempty"`
	PageSize  int32    `json:"page_size,omitempty"`
	PageToken string   `json:"page_token,omitempty"`
}

type ListOrdersResponse struct {
	Orders        []models.Order `json:"orders"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

type GetOrderRequest struct {
	OrderId string `json:"order_id"`
}

// GetOrderResponse is the full detail view of an order.
type GetOrderResponse struct {
	Order          *models.Order        `json:"order"`
	Assignment     *models.Assignment   `json:"assignment,omitempty"`
	Submissions    []models.Submission  `json:"submissions,omitempty"`
	Comments       []models.Comment     `json:"comments,omitempty"`
	Cancellation   *models.Cancellation `json:"cancellation,omitempty"`
	AllowedActions []string             `json:"allowed_actions,omitempty"`
}

// UpdateOrderRequest patches an order; unset fields are left unchanged.
type UpdateOrderRequest struct {
	OrderId       string   `json:"order_id"`
	ClientName    *string  `json:"client_name,omitempty"`
	ClientPhone   *string  `json:"client_phone,omitempty"`
	City          *string  `json:"city,omitempty"`
	Location      *string  `json:"location,omitempty"`
	ShootDate     *string  `json:"shoot_date,omitempty"`
	Package       *string  `json:"package,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	Requirements  *string  `json:"requirements,omitempty"`
	ReferenceLink *string  `json:"reference_link,omitempty"`
}

type DeleteOrderRequest struct {
	OrderId string `json:"order_id"`
}

type DeleteOrderResponse struct{}

// OrderActionRequest drives a named transition (approve, reject, request info, final
// review, complete). Comment is required for reject and request info.
type OrderActionRequest struct {
	OrderId string `json:"order_id"`
	Comment string `json:"comment,omitempty"`
}

type AssignStaffRequest struct {
	OrderId  string `json:"order_id"`
	PilotId  string `json:"pilot_id,omitempty"`
	EditorId string `json:"editor_id,omitempty"`
}

type AssignmentResponse struct {
	Assignment *models.Assignment `json:"assignment"`
}

type ReviewSubmissionRequest struct {
	SubmissionId string `json:"submission_id"`
	Approve      bool   `json:"approve"`
	Comment      string `json:"comment,omitempty"`
}

type SubmissionResponse struct {
	Submission *models.Submission `json:"submission"`
}

type CancelOrderRequest struct {
	OrderId      string   `json:"order_id"`
	Reason       string   `json:"reason"`
	RefundAmount *float64 `json:"refund_amount,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

type CancellationActionRequest struct {
	CancellationId string   `json:"cancellation_id"`
	RefundAmount   *float64 `json:"refund_amount,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type CancellationResponse struct {
	Cancellation *models.Cancellation `json:"cancellation"`
}

type ListCancellationsRequest struct{}

type ListCancellationsResponse struct {
	Cancellations []models.Cancellation `json:"cancellations"`
}

type CreateStaffRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
	Username string `json:"username,omitempty"`
}

type StaffResponse struct {
	Staff *models.Staff `json:"staff"`
}

type ListStaffRequest struct {
	Role       string `json:"role,omitempty"`
	ActiveOnly bool   `json:"active_only,omitempty"`
}

type ListStaffResponse struct {
	Staff []models.Staff `json:"staff"`
}

type SetStaffActiveRequest struct {
	StaffId string `json:"staff_id"`
	Active  bool   `json:"active"`
}

type AddCommentRequest struct {
	OrderId string `json:"order_id"`
	Stage   string `json:"stage,omitempty"`
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

// AdminServiceServer is the server API for admin.v1.AdminService.
type AdminServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*OrderResponse, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error)
	UpdateOrder(context.Context, *UpdateOrderRequest) (*OrderResponse, error)
	DeleteOrder(context.Context, *DeleteOrderRequest) (*DeleteOrderResponse, error)
	ApproveOrder(context.Context, *OrderActionRequest) (*OrderResponse, error)
	RejectOrder(context.Context, *OrderActionRequest) (*OrderResponse, error)
	RequestInfo(context.Context, *OrderActionRequest) (*OrderResponse, error)
	AssignStaff(context.Context, *AssignStaffRequest) (*AssignmentResponse, error)
	ReviewSubmission(context.Context, *ReviewSubmissionRequest) (*SubmissionResponse, error)
	SendToFinalReview(context.Context, *OrderActionRequest) (*OrderResponse, error)
	Complete(context.Context, *OrderActionRequest) (*OrderResponse, error)
	CancelOrder(context.Context, *CancelOrderRequest) (*CancellationResponse, error)
	ReassignCancellation(context.Context, *CancellationActionRequest) (*CancellationResponse, error)
	InitiateRefund(context.Context, *CancellationActionRequest) (*CancellationResponse, error)
	MarkCancellationHandled(context.Context, *CancellationActionRequest) (*CancellationResponse, error)
	ListCancellations(context.Context, *ListCancellationsRequest) (*ListCancellationsResponse, error)
	CreateStaff(context.Context, *CreateStaffRequest) (*StaffResponse, error)
	ListStaff(context.Context, *ListStaffRequest) (*ListStaffResponse, error)
	SetStaffActive(context.Context, *SetStaffActiveRequest) (*StaffResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*CommentResponse, error)
	ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error)
}

// UnimplementedAdminServiceServer can be embedded to have forward compatible implementations.
type UnimplementedAdminServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedAdminServiceServer) CreateOrder(context.Context, *CreateOrderRequest) (*OrderResponse, error) {
	return nil, unimplemented("CreateOrder")
}
func (UnimplementedAdminServiceServer) ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error) {
	return nil, unimplemented("ListOrders")
}
func (UnimplementedAdminServiceServer) GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error) {
	return nil, unimplemented("GetOrder")
}
func (UnimplementedAdminServiceServer) UpdateOrder(context.Context, *UpdateOrderRequest) (*OrderResponse, error) {
	return nil, unimplemented("UpdateOrder")
}
func (UnimplementedAdminServiceServer) DeleteOrder(context.Context, *DeleteOrderRequest) (*DeleteOrderResponse, error) {
	return nil, unimplemented("DeleteOrder")
}
func (UnimplementedAdminServiceServer) ApproveOrder(context.Context, *OrderActionRequest) (*OrderResponse, error) {
	return nil, unimplemented("ApproveOrder")
}
func (UnimplementedAdminServiceServer) RejectOrder(context.Context, *OrderActionRequest) (*OrderResponse, error) {
	return nil, unimplemented("RejectOrder")
}
func (UnimplementedAdminServiceServer) RequestInfo(context.Context, *OrderActionRequest) (*OrderResponse, error) {
	return nil, unimplemented("RequestInfo")
}
func (UnimplementedAdminServiceServer) AssignStaff(context.Context, *AssignStaffRequest) (*AssignmentResponse, error) {
	return nil, unimplemented("AssignStaff")
}
func (UnimplementedAdminServiceServer) ReviewSubmission(context.Context, *ReviewSubmissionRequest) (*SubmissionResponse, error) {
	return nil, unimplemented("ReviewSubmission")
}
func (UnimplementedAdminServiceServer) SendToFinalReview(context.Context, *OrderActionRequest) (*OrderResponse, error) {
	return nil, unimplemented("SendToFinalReview")
}
func (UnimplementedAdminServiceServer) Complete(context.Context, *OrderActionRequest) (*OrderResponse, error) {
	return nil, unimplemented("Complete")
}
func (UnimplementedAdminServiceServer) CancelOrder(context.Context, *CancelOrderRequest) (*CancellationResponse, error) {
	return nil, unimplemented("CancelOrder")
}
func (UnimplementedAdminServiceServer) ReassignCancellation(context.Context, *CancellationActionRequest) (*CancellationResponse, error) {
	return nil, unimplemented("ReassignCancellation")
}
func (UnimplementedAdminServiceServer) InitiateRefund(context.Context, *CancellationActionRequest) (*CancellationResponse, error) {
	return nil, unimplemented("InitiateRefund")
}
func (UnimplementedAdminServiceServer) MarkCancellationHandled(context.Context, *CancellationActionRequest) (*CancellationResponse, error) {
	return nil, unimplemented("MarkCancellationHandled")
}
func (UnimplementedAdminServiceServer) ListCancellations(context.Context, *ListCancellationsRequest) (*ListCancellationsResponse, error) {
	return nil, unimplemented("ListCancellations")
}
func (UnimplementedAdminServiceServer) CreateStaff(context.Context, *CreateStaffRequest) (*StaffResponse, error) {
	return nil, unimplemented("CreateStaff")
}
func (UnimplementedAdminServiceServer) ListStaff(context.Context, *ListStaffRequest) (*ListStaffResponse, error) {
	return nil, unimplemented("ListStaff")
}
func (UnimplementedAdminServiceServer) SetStaffActive(context.Context, *SetStaffActiveRequest) (*StaffResponse, error) {
	return nil, unimplemented("SetStaffActive")
}
func (UnimplementedAdminServiceServer) AddComment(context.Context, *AddCommentRequest) (*CommentResponse, error) {
	return nil, unimplemented("AddComment")
}
func (UnimplementedAdminServiceServer) ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error) {
	return nil, unimplemented("ListComments")
}

// AdminService_ServiceDesc is the grpc.ServiceDesc for admin.v1.AdminService.
var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		wire.Method(ServiceName, "CreateOrder", AdminServiceServer.CreateOrder),
		wire.Method(ServiceName, "ListOrders", AdminServiceServer.ListOrders),
		wire.Method(ServiceName, "GetOrder", AdminServiceServer.GetOrder),
		wire.Method(ServiceName, "UpdateOrder", AdminServiceServer.UpdateOrder),
		wire.Method(ServiceName, "DeleteOrder", AdminServiceServer.DeleteOrder),
		wire.Method(ServiceName, "ApproveOrder", AdminServiceServer.ApproveOrder),
		wire.Method(ServiceName, "RejectOrder", AdminServiceServer.RejectOrder),
		wire.Method(ServiceName, "RequestInfo", AdminServiceServer.RequestInfo),
		wire.Method(ServiceName, "AssignStaff", AdminServiceServer.AssignStaff),
		wire.Method(ServiceName, "ReviewSubmission", AdminServiceServer.ReviewSubmission),
		wire.Method(ServiceName, "SendToFinalReview", AdminServiceServer.SendToFinalReview),
		wire.Method(ServiceName, "Complete", AdminServiceServer.Complete),
		wire.Method(ServiceName, "CancelOrder", AdminServiceServer.CancelOrder),
		wire.Method(ServiceName, "ReassignCancellation", AdminServiceServer.ReassignCancellation),
		wire.Method(ServiceName, "InitiateRefund", AdminServiceServer.InitiateRefund),
		wire.Method(ServiceName, "MarkCancellationHandled", AdminServiceServer.MarkCancellationHandled),
		wire.Method(ServiceName, "ListCancellations", AdminServiceServer.ListCancellations),
		wire.Method(ServiceName, "CreateStaff", AdminServiceServer.CreateStaff),
		wire.Method(ServiceName, "ListStaff", AdminServiceServer.ListStaff),
		wire.Method(ServiceName, "SetStaffActive", AdminServiceServer.SetStaffActive),
		wire.Method(ServiceName, "AddComment", AdminServiceServer.AddComment),
		wire.Method(ServiceName, "ListComments", AdminServiceServer.ListComments),
	},
	Metadata: "admin/v1/admin.go",
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

// AdminServiceClient is a thin typed client for admin.v1.AdminService.
type AdminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) *AdminServiceClient {
	return &AdminServiceClient{cc: cc}
}

func method(name string) string { return "/" + ServiceName + "/" + name }

func (c *AdminServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, method("CreateOrder"), in, opts...)
}
func (c *AdminServiceClient) ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return wire.Invoke[ListOrdersResponse](ctx, c.cc, method("ListOrders"), in, opts...)
}
func (c *AdminServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error) {
	return wire.Invoke[GetOrderResponse](ctx, c.cc, method("GetOrder"), in, opts...)
}
func (c *AdminServiceClient) UpdateOrder(ctx context.Context, in *UpdateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, method("UpdateOrder"), in, opts...)
}
func (c *AdminServiceClient) DeleteOrder(ctx context.Context, in *DeleteOrderRequest, opts ...grpc.CallOption) (*DeleteOrderResponse, error) {
	return wire.Invoke[DeleteOrderResponse](ctx, c.cc, method("DeleteOrder"), in, opts...)
}
func (c *AdminServiceClient) ApproveOrder(ctx context.Context, in *OrderActionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, method("ApproveOrder"), in, opts...)
}
func (c *AdminServiceClient) RejectOrder(ctx context.Context, in *OrderActionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, method("RejectOrder"), in, opts...)
}
func (c *AdminServiceClient) RequestInfo(ctx context.Context, in *OrderActionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, method("RequestInfo"), in, opts...)
}
func (c *AdminServiceClient) AssignStaff(ctx context.Context, in *AssignStaffRequest, opts ...grpc.CallOption) (*AssignmentResponse, error) {
	return wire.Invoke[AssignmentResponse](ctx, c.cc, method("AssignStaff"), in, opts...)
}
func (c *AdminServiceClient) ReviewSubmission(ctx context.Context, in *ReviewSubmissionRequest, opts ...grpc.CallOption) (*SubmissionResponse, error) {
	return wire.Invoke[SubmissionResponse](ctx, c.cc, method("ReviewSubmission"), in, opts...)
}
func (c *AdminServiceClient) SendToFinalReview(ctx context.Context, in *OrderActionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, method("SendToFinalReview"), in, opts...)
}
func (c *AdminServiceClient) Complete(ctx context.Context, in *OrderActionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return wire.Invoke[OrderResponse](ctx, c.cc, method("Complete"), in, opts...)
}
func (c *AdminServiceClient) CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*CancellationResponse, error) {
	return wire.Invoke[CancellationResponse](ctx, c.cc, method("CancelOrder"), in, opts...)
}
func (c *AdminServiceClient) ReassignCancellation(ctx context.Context, in *CancellationActionRequest, opts ...grpc.CallOption) (*CancellationResponse, error) {
	return wire.Invoke[CancellationResponse](ctx, c.cc, method("ReassignCancellation"), in, opts...)
}
func (c *AdminServiceClient) InitiateRefund(ctx context.Context, in *CancellationActionRequest, opts ...grpc.CallOption) (*CancellationResponse, error) {
	return wire.Invoke[CancellationResponse](ctx, c.cc, method("InitiateRefund"), in, opts...)
}
func (c *AdminServiceClient) MarkCancellationHandled(ctx context.Context, in *CancellationActionRequest, opts ...grpc.CallOption) (*CancellationResponse, error) {
	return wire.Invoke[CancellationResponse](ctx, c.cc, method("MarkCancellationHandled"), in, opts...)
}
func (c *AdminServiceClient) ListCancellations(ctx context.Context, in *ListCancellationsRequest, opts ...grpc.CallOption) (*ListCancellationsResponse, error) {
	return wire.Invoke[ListCancellationsResponse](ctx, c.cc, method("ListCancellations"), in, opts...)
}
func (c *AdminServiceClient) CreateStaff(ctx context.Context, in *CreateStaffRequest, opts ...grpc.CallOption) (*StaffResponse, error) {
	return wire.Invoke[StaffResponse](ctx, c.cc, method("CreateStaff"), in, opts...)
}
func (c *AdminServiceClient) ListStaff(ctx context.Context, in *ListStaffRequest, opts ...grpc.CallOption) (*ListStaffResponse, error) {
	return wire.Invoke[ListStaffResponse](ctx, c.cc, method("ListStaff"), in, opts...)
}
func (c *AdminServiceClient) SetStaffActive(ctx context.Context, in *SetStaffActiveRequest, opts ...grpc.CallOption) (*StaffResponse, error) {
	return wire.Invoke[StaffResponse](ctx, c.cc, method("SetStaffActive"), in, opts...)
}
func (c *AdminServiceClient) AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*CommentResponse, error) {
	return wire.Invoke[CommentResponse](ctx, c.cc, method("AddComment"), in, opts...)
}
func (c *AdminServiceClient) ListComments(ctx context.Context, in *ListCommentsRequest, opts ...grpc.CallOption) (*ListCommentsResponse, error) {
	return wire.Invoke[ListCommentsResponse](ctx, c.cc, method("ListComments"), in, opts...)
}
