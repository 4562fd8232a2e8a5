// Package staffv1 defines staff.v1.StaffService, the pilot and editor portal API.
package staffv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/api/wire"
	"droneVideoOps/models"
)

const ServiceName = "staff.v1.StaffService"

type ListMyAssignmentsRequest struct{}

// Job is an order the caller is currently assigned to.
type Job struct {
	Order      models.Order      `json:"order"`
	Assignment models.Assignment `json:"assignment"`
}

type ListMyAssignmentsResponse struct {
	Jobs []Job `json:"jobs"`
}

type SubmitDeliverableRequest struct {
	OrderId     string   `json:"order_id"`
	DriveLink   string   `json:"drive_link"`
	HoursWorked *float64 `json:"hours_worked,omitempty"`
	Comments    string   `json:"comments,omitempty"`
}

// ResubmitDeliverableRequest replaces a rejected submission. Empty fields default to the
// rejected submission's values.
type ResubmitDeliverableRequest struct {
	PreviousSubmissionId string   `json:"previous_submission_id"`
	DriveLink            string   `json:"drive_link,omitempty"`
	HoursWorked          *float64 `json:"hours_worked,omitempty"`
	Comments             string   `json:"comments,omitempty"`
}

type SubmissionResponse struct {
	Submission *models.Submission `json:"submission"`
}

type ListSubmissionsRequest struct {
	OrderId string `json:"order_id"`
}

type ListSubmissionsResponse struct {
	Submissions []models.Submission `json:"submissions"`
}

type AddCommentRequest struct {
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

// StaffServiceServer is the server API for staff.v1.StaffService.
type StaffServiceServer interface {
	ListMyAssignments(context.Context, *ListMyAssignmentsRequest) (*ListMyAssignmentsResponse, error)
	SubmitDeliverable(context.Context, *SubmitDeliverableRequest) (*SubmissionResponse, error)
	ResubmitDeliverable(context.Context, *ResubmitDeliverableRequest) (*SubmissionResponse, error)
	ListSubmissions(context.Context, *ListSubmissionsRequest) (*ListSubmissionsResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*CommentResponse, error)
	ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error)
}

// UnimplementedStaffServiceServer can be embedded to have forward compatible implementations.
type UnimplementedStaffServiceServer struct{}

func (UnimplementedStaffServiceServer) ListMyAssignments(context.Context, *ListMyAssignmentsRequest) (*ListMyAssignmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyAssignments not implemented")
}
func (UnimplementedStaffServiceServer) SubmitDeliverable(context.Context, *SubmitDeliverableRequest) (*SubmissionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitDeliverable not implemented")
}
func (UnimplementedStaffServiceServer) ResubmitDeliverable(context.Context, *ResubmitDeliverableRequest) (*SubmissionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResubmitDeliverable not implemented")
}
func (UnimplementedStaffServiceServer) ListSubmissions(context.Context, *ListSubmissionsRequest) (*ListSubmissionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSubmissions not implemented")
}
func (UnimplementedStaffServiceServer) AddComment(context.Context, *AddCommentRequest) (*CommentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddComment not implemented")
}
func (UnimplementedStaffServiceServer) ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListComments not implemented")
}

// StaffService_ServiceDesc is the grpc.ServiceDesc for staff.v1.StaffService.
var StaffService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StaffServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		wire.Method(ServiceName, "ListMyAssignments", StaffServiceServer.ListMyAssignments),
		wire.Method(ServiceName, "SubmitDeliverable", StaffServiceServer.SubmitDeliverable),
		wire.Method(ServiceName, "ResubmitDeliverable", StaffServiceServer.ResubmitDeliverable),
		wire.Method(ServiceName, "ListSubmissions", StaffServiceServer.ListSubmissions),
		wire.Method(ServiceName, "AddComment", StaffServiceServer.AddComment),
		wire.Method(ServiceName, "ListComments", StaffServiceServer.ListComments),
	},
	Metadata: "staff/v1/staff.go",
}

func RegisterStaffServiceServer(s grpc.ServiceRegistrar, srv StaffServiceServer) {
	s.RegisterService(&StaffService_ServiceDesc, srv)
}

// StaffServiceClient is a thin typed client for staff.v1.StaffService.
type StaffServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStaffServiceClient(cc grpc.ClientConnInterface) *StaffServiceClient {
	return &StaffServiceClient{cc: cc}
}

func (c *StaffServiceClient) ListMyAssignments(ctx context.Context, in *ListMyAssignmentsRequest, opts ...grpc.CallOption) (*ListMyAssignmentsResponse, error) {
	return wire.Invoke[ListMyAssignmentsResponse](ctx, c.cc, "/"+ServiceName+"/ListMyAssignments", in, opts...)
}
func (c *StaffServiceClient) SubmitDeliverable(ctx context.Context, in *SubmitDeliverableRequest, opts ...grpc.CallOption) (*SubmissionResponse, error) {
	return wire.Invoke[SubmissionResponse](ctx, c.cc, "/"+ServiceName+"/SubmitDeliverable", in, opts...)
}
func (c *StaffServiceClient) ResubmitDeliverable(ctx context.Context, in *ResubmitDeliverableRequest, opts ...grpc.CallOption) (*SubmissionResponse, error) {
	return wire.Invoke[SubmissionResponse](ctx, c.cc, "/"+ServiceName+"/ResubmitDeliverable", in, opts...)
}
func (c *StaffServiceClient) ListSubmissions(ctx context.Context, in *ListSubmissionsRequest, opts ...grpc.CallOption) (*ListSubmissionsResponse, error) {
	return wire.Invoke[ListSubmissionsResponse](ctx, c.cc, "/"+ServiceName+"/ListSubmissions", in, opts...)
}
func (c *StaffServiceClient) AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*CommentResponse, error) {
	return wire.Invoke[CommentResponse](ctx, c.cc, "/"+ServiceName+"/AddComment", in, opts...)
}
func (c *StaffServiceClient) ListComments(ctx context.Context, in *ListCommentsRequest, opts ...grpc.CallOption) (*ListCommentsResponse, error) {
	return wire.Invoke[ListCommentsResponse](ctx, c.cc, "/"+ServiceName+"/ListComments", in, opts...)
}
