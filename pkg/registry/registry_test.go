package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docdantic/pkg/model"
)

func user() model.Declaration {
	return model.Declaration{
		Name:   "User",
		Kind:   model.KindModel,
		Fields: []model.Field{{Name: "id", Type: model.Named("int"), Required: true}},
	}
}

func TestRegisterAndResolve(t *testing.T) {
	reg := New()
	reg.MustRegister("pkg", user(), model.Declaration{Name: "Role", Kind: model.KindEnum})
	reg.MustRegister("acme.billing", model.Declaration{Name: "Invoice", Kind: model.KindModel})

	decl, err := reg.Resolve("pkg.User")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decl.Path != "pkg.User" {
		t.Fatalf("expected Path to be set, got %q", decl.Path)
	}

	if _, err := reg.Resolve("acme.billing.Invoice"); err != nil {
		t.Fatalf("resolve dotted namespace: %v", err)
	}

	if diff := cmp.Diff([]string{"acme.billing", "pkg"}, reg.Namespaces()); diff != "" {
		t.Fatalf("namespaces mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"acme.billing.Invoice", "pkg.Role", "pkg.User"}, reg.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"acme.billing.Invoice", "pkg.User"}, reg.Models()); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("pkg.Role") || reg.Has("pkg.Missing") {
		t.Fatal("unexpected Has result")
	}
}

func TestResolveErrors(t *testing.T) {
	reg := New()
	reg.MustRegister("pkg", user(), model.Declaration{Name: "Role", Kind: model.KindEnum})

	cases := []struct {
		path string
		want error
	}{
		{path: "", want: ErrInvalidPath},
		{path: "User", want: ErrInvalidPath},
		{path: ".User", want: ErrInvalidPath},
		{path: "pkg.", want: ErrInvalidPath},
		{path: "other.User", want: ErrNamespaceNotFound},
		{path: "pkg.Missing", want: ErrDeclarationNotFound},
	}
	for _, tc := range cases {
		_, err := reg.Resolve(tc.path)
		var resolution *ResolutionError
		if !errors.As(err, &resolution) {
			t.Fatalf("%q: expected ResolutionError, got %v", tc.path, err)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.path, tc.want, err)
		}
	}

	_, err := reg.Resolve("pkg.Role")
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if typeErr.Kind != model.KindEnum || !errors.Is(err, ErrNotModel) {
		t.Fatalf("unexpected type error %+v", typeErr)
	}
	if _, err := reg.Lookup("pkg.Role"); err != nil {
		t.Fatalf("lookup should accept non-models: %v", err)
	}
}

func TestRegisterRejectsDuplicatesAtomically(t *testing.T) {
	reg := New()
	reg.MustRegister("pkg", user())

	err := reg.Register("pkg", model.Declaration{Name: "Team", Kind: model.KindModel}, user())
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if reg.Has("pkg.Team") {
		t.Fatal("failed batch must not register any declaration")
	}

	if err := reg.Register("pkg", model.Declaration{Name: "A", Kind: model.KindModel}, model.Declaration{Name: "A", Kind: model.KindModel}); err == nil {
		t.Fatal("expected duplicate within batch error")
	}
	if err := reg.Register(" ", user()); err == nil {
		t.Fatal("expected namespace error")
	}
	if err := reg.Register("pkg.", user()); err == nil {
		t.Fatal("expected invalid namespace error")
	}
	if err := reg.Register("other", model.Declaration{Kind: model.KindModel}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestConcurrentReads(t *testing.T) {
	reg := New()
	reg.MustRegister("pkg", user())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Resolve("pkg.User"); err != nil {
				t.Errorf("resolve: %v", err)
			}
		}()
	}
	wg.Wait()
}
