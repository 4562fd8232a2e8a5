package grpcserver

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/internal/workflow"
	"droneVideoOps/repository"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"not found", fmt.Errorf("order x: %w", workflow.ErrNotFound), codes.NotFound},
		{"forbidden", fmt.Errorf("pilot: %w", workflow.ErrForbidden), codes.PermissionDenied},
		{"transition", fmt.Errorf("approve: %w", workflow.ErrInvalidTransition), codes.FailedPrecondition},
		{"conflict", fmt.Errorf("update: %w", repository.ErrStatusConflict), codes.Aborted},
		{"comment", workflow.ErrCommentRequired, codes.InvalidArgument},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"status passthrough", status.Error(codes.ResourceExhausted, "slow down"), codes.ResourceExhausted},
		{"other", errors.New("disk on fire"), codes.Internal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := status.Code(toStatus(tc.err)); got != tc.want {
				t.Fatalf("toStatus(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
	if toStatus(nil) != nil {
		t.Fatalf("toStatus(nil) should be nil")
	}
}

func TestToStatus_ValidationDetails(t *testing.T) {
	verr := &workflow.ValidationError{Fields: map[string]string{
		"city":   "City is required",
		"amount": "Amount must be greater than 0",
	}}
	st := status.Convert(toStatus(fmt.Errorf("create order: %w", verr)))
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", st.Code())
	}
	if len(st.Details()) != 1 {
		t.Fatalf("expected one detail, got %d", len(st.Details()))
	}
	br, ok := st.Details()[0].(*errdetails.BadRequest)
	if !ok {
		t.Fatalf("expected BadRequest detail, got %T", st.Details()[0])
	}
	v := br.GetFieldViolations()
	if len(v) != 2 || v[0].GetField() != "amount" || v[1].GetField() != "city" {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2026, 10, 1, 8, 0, 1, 123456000, time.UTC)
	token := encodeCursor(created, "a1b2")
	gotTime, gotID, err := decodeCursor(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !gotTime.Equal(created) || gotID != "a1b2" {
		t.Fatalf("got (%v, %q), want (%v, %q)", gotTime, gotID, created, "a1b2")
	}

	for _, bad := range []string{"%%%", encodeCursorRaw("123"), encodeCursorRaw("abc|id"), encodeCursorRaw("123|")} {
		if _, _, err := decodeCursor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestClampPageSize(t *testing.T) {
	cases := map[int32]int{0: defaultPageSize, -3: defaultPageSize, 5: 5, 1000: maxPageSize}
	for in, want := range cases {
		if got := clampPageSize(in); got != want {
			t.Fatalf("clampPageSize(%d) = %d, want %d", in, got, want)
		}
	}
}

func encodeCursorRaw(raw string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}
