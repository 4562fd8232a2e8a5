package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/models"
)

// UserLookup resolves a login to its users row.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// StaffLookup resolves a pilot/editor login to its staff row.
type StaffLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.Staff, error)
}

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that extracts and validates
// a Bearer JWT from incoming metadata and injects the Principal into the context.
// Methods listed in allowUnauthenticated will bypass authentication (e.g., health checks).
func NewUnaryAuthInterceptor(secret string, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		p, err := ParseFromMD(ctx, secret)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
		return handler(WithPrincipal(ctx, p), req)
	}
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok || p == nil {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	return p, nil
}

// RequireKind ensures the principal has one of the given kinds (lowercased compare).
func RequireKind(ctx context.Context, kinds ...string) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		if p.Kind == strings.ToLower(k) {
			return p, nil
		}
	}
	return nil, status.Errorf(codes.PermissionDenied, "only %s can perform this action", strings.Join(kinds, " or "))
}

// RequireAdmin ensures the caller is an admin principal AND that the underlying
// user exists with role 'admin'. This prevents spoofing by a non-admin.
func RequireAdmin(ctx context.Context, users UserLookup) (*Principal, *models.User, error) {
	p, err := RequireKind(ctx, KindAdmin)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		return nil, nil, status.Error(codes.Internal, "users repository not configured")
	}
	u, err := users.GetByUsername(ctx, p.Name)
	if err != nil {
		return nil, nil, status.Errorf(codes.Internal, "get user: %v", err)
	}
	if u == nil || u.Role != models.RoleAdmin {
		return nil, nil, status.Error(codes.PermissionDenied, "only admin can perform this action")
	}
	return p, u, nil
}

// RequireClient ensures the caller is a client and returns its users row.
func RequireClient(ctx context.Context, users UserLookup) (*Principal, *models.User, error) {
	p, err := RequireKind(ctx, KindClient)
	if err != nil {
		return nil, nil, err
	}
	u, err := users.GetByUsername(ctx, p.Name)
	if err != nil {
		return nil, nil, status.Errorf(codes.Internal, "get user: %v", err)
	}
	if u == nil {
		return nil, nil, status.Error(codes.NotFound, "user not found")
	}
	if u.Role != models.RoleClient {
		return nil, nil, status.Error(codes.PermissionDenied, "only client can perform this action")
	}
	return p, u, nil
}

// RequireStaff ensures the caller is a pilot or an editor with an active staff record
// whose role matches the token kind.
func RequireStaff(ctx context.Context, staff StaffLookup) (*Principal, *models.Staff, error) {
	p, err := RequireKind(ctx, KindPilot, KindEditor)
	if err != nil {
		return nil, nil, err
	}
	s, err := staff.GetByUsername(ctx, p.Name)
	if err != nil {
		return nil, nil, status.Errorf(codes.Internal, "get staff: %v", err)
	}
	if s == nil || string(s.Role) != p.Kind {
		return nil, nil, status.Error(codes.PermissionDenied, "no staff record for caller")
	}
	if !s.Active {
		return nil, nil, status.Error(codes.PermissionDenied, "staff account is inactive")
	}
	return p, s, nil
}
