package auth

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/internal/testutil"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

func TestRequireKindAndHelpers(t *testing.T) {
	ctx := WithPrincipal(context.Background(), &Principal{Name: "p1", Kind: KindPilot})
	if _, err := RequireKind(ctx, KindPilot, KindEditor); err != nil {
		t.Fatalf("RequireKind: %v", err)
	}
	_, err := RequireKind(ctx, KindClient, KindAdmin)
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for pilot, got %v", err)
	}
	if _, err := RequirePrincipal(context.Background()); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without principal, got %v", err)
	}
}

func TestRequireAdmin_WithDBRoleCheck(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "authadmin")
	users := repository.NewUserRepository(d)
	ctx := context.Background()
	if _, err := users.Create(ctx, "alice", models.RoleClient); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	// Spoofed principal kind=admin but DB role is client
	pctx := WithPrincipal(ctx, &Principal{Name: "alice", Kind: KindAdmin})
	if _, _, err := RequireAdmin(pctx, users); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for non-admin role, got %v", err)
	}

	if err := users.UpdateRoleByUsername(ctx, "alice", models.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	_, u, err := RequireAdmin(pctx, users)
	if err != nil || u == nil || u.Username != "alice" {
		t.Fatalf("RequireAdmin real admin: %v %+v", err, u)
	}
}

func TestRequireClientAndStaff(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "authroles")
	store := repository.NewStore(d)
	ctx := context.Background()
	if _, err := store.Users.Create(ctx, "carol", models.RoleClient); err != nil {
		t.Fatalf("create carol: %v", err)
	}
	if _, err := store.Staff.Create(ctx, &models.Staff{Code: "PUN001", Role: models.StaffPilot, Name: "Ravi", Username: "ravi", Active: true}); err != nil {
		t.Fatalf("create pilot: %v", err)
	}

	cctx := WithPrincipal(ctx, &Principal{Name: "carol", Kind: KindClient})
	if _, u, err := RequireClient(cctx, store.Users); err != nil || u.Username != "carol" {
		t.Fatalf("RequireClient: %v", err)
	}
	ghost := WithPrincipal(ctx, &Principal{Name: "ghost", Kind: KindClient})
	if _, _, err := RequireClient(ghost, store.Users); status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound for unknown client, got %v", err)
	}

	pctx := WithPrincipal(ctx, &Principal{Name: "ravi", Kind: KindPilot})
	_, s, err := RequireStaff(pctx, store.Staff)
	if err != nil || s.Code != "PUN001" {
		t.Fatalf("RequireStaff: %v %+v", err, s)
	}
	// A pilot login presenting an editor token is refused.
	ectx := WithPrincipal(ctx, &Principal{Name: "ravi", Kind: KindEditor})
	if _, _, err := RequireStaff(ectx, store.Staff); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for kind mismatch, got %v", err)
	}
	if err := store.Staff.SetActive(ctx, s.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, _, err := RequireStaff(pctx, store.Staff); status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for inactive staff, got %v", err)
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	secret := "s3cr3t"
	interceptor := NewUnaryAuthInterceptor(secret, "/health")

	hCalled := false
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/health"}, func(ctx context.Context, req any) (any, error) {
		hCalled = true
		if p, ok := FromContext(ctx); ok && p != nil {
			t.Fatalf("expected no principal on allowlisted path")
		}
		return 123, nil
	})
	if err != nil || !hCalled {
		t.Fatalf("allowlisted handler err=%v called=%v", err, hCalled)
	}

	tok := testutil.GenerateJWTHS256(t, secret, "bob", "client")
	ctx := testutil.CtxWithBearer(context.Background(), tok)
	_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		p, ok := FromContext(ctx)
		if !ok || p == nil || p.Name != "bob" || p.Kind != KindClient {
			t.Fatalf("principal not injected: %+v ok=%v", p, ok)
		}
		return nil, nil
	})
	if err != nil {
		t.Fatalf("interceptor auth path: %v", err)
	}

	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		t.Fatalf("handler must not run without a token")
		return nil, nil
	})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}
