package authz

import (
	"context"
	"errors"
	"testing"
)

func TestPrincipalFromContext(t *testing.T) {
	if p := PrincipalFromContext(context.Background()); p != nil {
		t.Fatalf("empty context: %+v", p)
	}

	want := &Principal{ID: 1, Email: "ops@example.com"}
	ctx := ContextWithPrincipal(context.Background(), want)
	if got := PrincipalFromContext(ctx); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRequirePrincipal(t *testing.T) {
	if _, err := RequirePrincipal(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err: %v", err)
	}

	ctx := ContextWithPrincipal(context.Background(), &Principal{ID: 1})
	if _, err := RequirePrincipal(ctx); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	if _, err := RequireAdmin(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("unauthenticated err: %v", err)
	}

	ctx := ContextWithPrincipal(context.Background(), &Principal{ID: 1})
	if _, err := RequireAdmin(ctx); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin err: %v", err)
	}

	ctx = ContextWithPrincipal(context.Background(), &Principal{ID: 1, IsAdmin: true})
	if _, err := RequireAdmin(ctx); err != nil {
		t.Fatalf("admin err: %v", err)
	}
}
