// Package scanner lists the struct types declared under a directory of a Go
// module so they can be pasted into an overlay scope block. It is meant for
// development use.
package scanner

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

// ErrNoModuleRoot is returned when no go.mod is found above the start
// directory.
var ErrNoModuleRoot = errors.New("scanner: could not locate module root")

// Type is a struct type declared in the scanned tree.
type Type struct {
	Name string
	// Package is the import path of the declaring package.
	Package string
	File    string
}

// Qualified returns the name used by scope configuration.
func (t Type) Qualified() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// FindModuleRoot walks up from start to the directory holding go.mod.
func FindModuleRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("scanner: resolve %s: %w", start, err)
	}
	for {
		info, err := os.Stat(filepath.Join(dir, "go.mod"))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w from %s", ErrNoModuleRoot, start)
		}
		dir = parent
	}
}

// ModulePath reads the module path declared in root/go.mod.
func ModulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("scanner: read go.mod: %w", err)
	}
	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return "", fmt.Errorf("scanner: go.mod in %s declares no module", root)
	}
	return modulePath, nil
}

// Scan parses every non-test .go file under root/relDir, including
// subdirectories, and returns the struct types it declares sorted by
// qualified name. Directories the go tool ignores (testdata, vendor, names
// starting with "." or "_") are skipped.
func Scan(root, relDir string) ([]Type, error) {
	target := filepath.Join(root, filepath.FromSlash(relDir))
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("scanner: directory %s: %w", target, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("scanner: stat %s: %w", target, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanner: %s is not a directory", target)
	}

	modulePath, err := ModulePath(root)
	if err != nil {
		modulePath = ""
	}

	fset := token.NewFileSet()
	var out []Type
	err = filepath.WalkDir(target, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if d.IsDir() {
			if p != target && skipDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		file, err := parser.ParseFile(fset, p, nil, parser.SkipObjectResolution)
		if err != nil {
			return fmt.Errorf("scanner: parse %s: %w", p, err)
		}
		pkg := importPath(modulePath, root, filepath.Dir(p))
		rel, _ := filepath.Rel(root, p)
		for _, typeName := range structTypes(file) {
			out = append(out, Type{Name: typeName, Package: pkg, File: filepath.ToSlash(rel)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Qualified() != out[j].Qualified() {
			return out[i].Qualified() < out[j].Qualified()
		}
		return out[i].File < out[j].File
	})
	return out, nil
}

// TypeNames returns the unique, sorted struct type names under root/relDir.
func TypeNames(root, relDir string) ([]string, error) {
	types, err := Scan(root, relDir)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	names := make([]string, 0, len(types))
	for _, t := range types {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names, nil
}

func structTypes(file *ast.File) []string {
	var names []string
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if _, isStruct := ts.Type.(*ast.StructType); isStruct {
				names = append(names, ts.Name.Name)
			}
		}
	}
	return names
}

func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func importPath(modulePath, root, dir string) string {
	if modulePath == "" {
		return ""
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return modulePath
	}
	return path.Join(modulePath, filepath.ToSlash(rel))
}
