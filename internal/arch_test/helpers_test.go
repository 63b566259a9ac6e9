package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const (
	modulePath  = "github.com/papapumpkin/novella"
	internalPfx = modulePath + "/internal/"
)

// internalDirPath returns internal/. go test runs with the package
// directory as its working directory, so it is the parent of that.
func internalDirPath(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Dir(wd)
}

func repoRoot(t *testing.T) string {
	t.Helper()
	return filepath.Dir(internalDirPath(t))
}

// internalPackages lists the packages under internal/ that hold Go source,
// arch_test excluded.
func internalPackages(t *testing.T) []string {
	t.Helper()

	dir := internalDirPath(t)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var pkgs []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == "arch_test" {
			continue
		}
		if len(goFilesIn(t, filepath.Join(dir, e.Name()))) > 0 {
			pkgs = append(pkgs, e.Name())
		}
	}
	return pkgs
}

// sourceFiles lists the .go files in dir, sorted, optionally with tests.
func sourceFiles(t *testing.T, dir string, withTests bool) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if !withTests && strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	slices.Sort(files)
	return files
}

func goFilesIn(t *testing.T, dir string) []string {
	t.Helper()
	return sourceFiles(t, dir, false)
}

// importsOf returns the internal packages pkgDir imports, by first path
// element after internal/.
func importsOf(t *testing.T, pkgDir string) []string {
	t.Helper()

	var out []string
	fset := token.NewFileSet()
	for _, f := range goFilesIn(t, pkgDir) {
		node, err := parser.ParseFile(fset, f, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parsing imports in %s: %v", f, err)
		}
		for _, imp := range node.Imports {
			rel, ok := strings.CutPrefix(strings.Trim(imp.Path.Value, `"`), internalPfx)
			if !ok {
				continue
			}
			rel, _, _ = strings.Cut(rel, "/")
			out = append(out, rel)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func lineCount(t *testing.T, filePath string) int {
	t.Helper()

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("reading %s: %v", filePath, err)
	}
	n := strings.Count(string(data), "\n")
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

type interfaceDecl struct {
	Name    string
	Methods []string
}

// interfaceDecls returns the interface types declared in filePath.
func interfaceDecls(t *testing.T, filePath string) []interfaceDecl {
	t.Helper()

	node, err := parser.ParseFile(token.NewFileSet(), filePath, nil, 0)
	if err != nil {
		t.Fatalf("parsing %s: %v", filePath, err)
	}
	var decls []interfaceDecl
	for _, d := range node.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			iface, ok := ts.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}
			decl := interfaceDecl{Name: ts.Name.Name}
			for _, m := range iface.Methods.List {
				for _, name := range m.Names {
					decl.Methods = append(decl.Methods, name.Name)
				}
			}
			decls = append(decls, decl)
		}
	}
	return decls
}
