package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

var checkedPackages = []string{
	"github.com/coinbase/cb-ecc-go/pkg/ecc",
	"github.com/coinbase/cb-ecc-go/pkg/ecc/ec",
	"github.com/coinbase/cb-ecc-go/pkg/ecc/field",
	"github.com/coinbase/cb-ecc-go/pkg/ecc/curves",
}

func load(t *testing.T, mode packages.LoadMode, patterns ...string) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, patterns...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			t.Fatalf("load %s: %v", pkg.PkgPath, e)
		}
	}
	return pkgs
}
