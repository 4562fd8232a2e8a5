package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	staffv1 "droneVideoOps/api/staff/v1"
	"droneVideoOps/internal/auth"
	"droneVideoOps/internal/workflow"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// StaffServer implements staff.v1.StaffService for pilots and editors.
type StaffServer struct {
	staffv1.UnimplementedStaffServiceServer
	Store    *repository.Store
	Workflow *workflow.Service
}

func (s *StaffServer) staff(ctx context.Context) (workflow.Actor, *models.Staff, error) {
	_, st, err := auth.RequireStaff(ctx, s.Store.Staff)
	if err != nil {
		return workflow.Actor{}, nil, err
	}
	return workflow.Actor{Role: models.Role(st.Role), ID: st.ID, Name: st.Name}, st, nil
}

// onJob fails unless st is on the order's current assignment in its own role.
func (s *StaffServer) onJob(ctx context.Context, st *models.Staff, ref string) (*models.Assignment, error) {
	if blank(ref) {
		return nil, errOrderIDRequired
	}
	a, err := s.Workflow.CurrentAssignment(ctx, ref)
	if err != nil {
		return nil, toStatus(err)
	}
	if a != nil {
		if st.Role == models.StaffPilot && a.PilotID != nil && *a.PilotID == st.ID {
			return a, nil
		}
		if st.Role == models.StaffEditor && a.EditorID != nil && *a.EditorID == st.ID {
			return a, nil
		}
	}
	return nil, status.Error(codes.PermissionDenied, "not assigned to this order")
}

func (s *StaffServer) ListMyAssignments(ctx context.Context, _ *staffv1.ListMyAssignmentsRequest) (*staffv1.ListMyAssignmentsResponse, error) {
	_, st, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.Workflow.ListStaffAssignments(ctx, st.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	jobs := make([]staffv1.Job, 0, len(list))
	for _, ao := range list {
		jobs = append(jobs, staffv1.Job{Order: ao.Order, Assignment: ao.Assignment})
	}
	return &staffv1.ListMyAssignmentsResponse{Jobs: jobs}, nil
}

func (s *StaffServer) SubmitDeliverable(ctx context.Context, req *staffv1.SubmitDeliverableRequest) (*staffv1.SubmissionResponse, error) {
	actor, _, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || blank(req.OrderId) {
		return nil, errOrderIDRequired
	}
	sub, err := s.Workflow.Submit(ctx, actor, workflow.SubmissionInput{
		OrderID:     req.OrderId,
		DriveLink:   req.DriveLink,
		HoursWorked: req.HoursWorked,
		Comments:    req.Comments,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &staffv1.SubmissionResponse{Submission: sub}, nil
}

func (s *StaffServer) ResubmitDeliverable(ctx context.Context, req *staffv1.ResubmitDeliverableRequest) (*staffv1.SubmissionResponse, error) {
	actor, _, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || blank(req.PreviousSubmissionId) {
		return nil, status.Error(codes.InvalidArgument, "previous_submission_id is required")
	}
	sub, err := s.Workflow.Resubmit(ctx, actor, req.PreviousSubmissionId, workflow.SubmissionInput{
		DriveLink:   req.DriveLink,
		HoursWorked: req.HoursWorked,
		Comments:    req.Comments,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &staffv1.SubmissionResponse{Submission: sub}, nil
}

func (s *StaffServer) ListSubmissions(ctx context.Context, req *staffv1.ListSubmissionsRequest) (*staffv1.ListSubmissionsResponse, error) {
	_, st, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errOrderIDRequired
	}
	if _, err := s.onJob(ctx, st, req.OrderId); err != nil {
		return nil, err
	}
	list, err := s.Workflow.ListSubmissions(ctx, req.OrderId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &staffv1.ListSubmissionsResponse{Submissions: list}, nil
}

// AddComment writes to the caller's submission stage of the timeline.
func (s *StaffServer) AddComment(ctx context.Context, req *staffv1.AddCommentRequest) (*staffv1.CommentResponse, error) {
	actor, st, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errOrderIDRequired
	}
	if _, err := s.onJob(ctx, st, req.OrderId); err != nil {
		return nil, err
	}
	stage := models.StagePilotSubmission
	if st.Role == models.StaffEditor {
		stage = models.StageEditorSubmission
	}
	c, err := s.Workflow.AddComment(ctx, actor, req.OrderId, stage, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &staffv1.CommentResponse{Comment: c}, nil
}

func (s *StaffServer) ListComments(ctx context.Context, req *staffv1.ListCommentsRequest) (*staffv1.ListCommentsResponse, error) {
	_, st, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, errOrderIDRequired
	}
	if _, err := s.onJob(ctx, st, req.OrderId); err != nil {
		return nil, err
	}
	list, err := s.Workflow.ListComments(ctx, req.OrderId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &staffv1.ListCommentsResponse{Comments: list}, nil
}
