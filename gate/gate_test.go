package gate_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sintocheck/sintocheck-api/gate"
)

type ownedThing struct {
	owner string
}

func ownerPolicy() gate.Policy[string] {
	return gate.PolicyFunc[string](func(_ context.Context, user string, _ gate.Action, resource any) bool {
		t, ok := resource.(*ownedThing)
		return ok && t.owner == user
	})
}

func TestGate_Authorize_NoPrincipal(t *testing.T) {
	g := gate.NewGate[string]()
	g.Register("note", ownerPolicy())

	err := g.Authorize(context.Background(), "", gate.ActionView, "note", &ownedThing{owner: ""})
	if !errors.Is(err, gate.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Authorize_NoPolicy(t *testing.T) {
	g := gate.NewGate[string]()

	err := g.Authorize(context.Background(), "p1", gate.ActionView, "unknown", nil)
	if !errors.Is(err, gate.ErrNoPolicyDefined) {
		t.Errorf("expected ErrNoPolicyDefined, got %v", err)
	}
}

func TestGate_Authorize_Owner(t *testing.T) {
	g := gate.NewGate[string]()
	g.Register("note", ownerPolicy())

	if err := g.Authorize(context.Background(), "p1", gate.ActionDelete, "note", &ownedThing{owner: "p1"}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestGate_Authorize_OtherPrincipal(t *testing.T) {
	g := gate.NewGate[string]()
	g.Register("note", ownerPolicy())

	err := g.Authorize(context.Background(), "p2", gate.ActionDelete, "note", &ownedThing{owner: "p1"})
	if !errors.Is(err, gate.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Can(t *testing.T) {
	g := gate.NewGate[string]()
	g.Register("note", ownerPolicy())

	if !g.Can(context.Background(), "p1", gate.ActionView, "note", &ownedThing{owner: "p1"}) {
		t.Error("expected Can to return true")
	}
	if g.Can(context.Background(), "p1", gate.ActionView, "note", "not a thing") {
		t.Error("expected Can to return false for a foreign resource type")
	}
}

func TestActionForMethod(t *testing.T) {
	cases := map[string]gate.Action{
		http.MethodGet:    gate.ActionView,
		http.MethodPost:   gate.ActionCreate,
		http.MethodPut:    gate.ActionUpdate,
		http.MethodPatch:  gate.ActionUpdate,
		http.MethodDelete: gate.ActionDelete,
	}
	for method, want := range cases {
		if got := gate.ActionForMethod(method); got != want {
			t.Errorf("ActionForMethod(%s) = %s, want %s", method, got, want)
		}
	}
}
