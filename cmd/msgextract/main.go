// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command msgextract scans a module for localization call sites and emits a
// gettext POT catalogue of the raw keys it finds.
//
// Extracted forms are Localizer.Tr calls with a constant key, localize.Key
// conversions and constants, and composite literals or function arguments
// typed as localize.Key. Tr calls additionally have their interpolation names
// checked against the markers present in the key.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/tools/go/packages"
)

// key models a gettext entry identified by its msgid.
type key struct {
	id string
}

type ref struct {
	file string
	line int
}

// markerPattern matches interpolation markers using the default escape.
var markerPattern = regexp.MustCompile(`@\(([^()]+)\)`)

// extractor holds the shared state and context for AST analysis within a
// package.
type extractor struct {
	refs         map[key][]ref
	projectRoot  string
	fset         *token.FileSet
	info         *types.Info
	localizePkgs map[string]struct{}
}

func main() {
	outPath := flag.String("o", "locales/messages.pot", "output file")
	pattern := flag.String("p", "./...", "package pattern to scan")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, *pattern)
	if err != nil {
		log.Fatalf("failed to load packages: %v", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal("failed to load packages due to errors")
	}

	refs := extractRefs(pkgs, findProjectRoot(wd), findLocalizePkgPaths(pkgs))

	// Emit POT
	keys := make([]key, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].id < keys[j].id })

	var b strings.Builder
	writeHeader(&b)

	for i, k := range keys {
		rs := refs[k]
		sort.Slice(rs, func(i, j int) bool {
			if rs[i].file != rs[j].file {
				return rs[i].file < rs[j].file
			}

			return rs[i].line < rs[j].line
		})

		// After sorting by file and line, duplicates are adjacent; skip them
		// without a per-key set.
		fmt.Fprint(&b, "#:")

		lastFile := ""

		lastLine := 0
		for _, r := range rs {
			if r.file != lastFile || r.line != lastLine {
				fmt.Fprintf(&b, " %s:%d", r.file, r.line)

				lastFile = r.file
				lastLine = r.line
			}
		}

		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "msgid %q\n", k.id)
		fmt.Fprintf(&b, "msgstr \"\"\n")

		// Add a separating blank line, but not after the very last entry.
		if i < len(keys)-1 {
			fmt.Fprintln(&b)
		}
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := os.WriteFile(*outPath, []byte(b.String()), 0o644); err != nil {
		log.Fatalf("failed to write output file %s: %v", *outPath, err)
	}
}

// extractRefs traverses all Go source files in the given packages, looking
// for localization call sites and keys to extract.
func extractRefs(pkgs []*packages.Package, projectRoot string, localizePkgPaths map[string]struct{}) map[key][]ref {
	refs := map[key][]ref{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{
			refs:         refs,
			projectRoot:  projectRoot,
			fset:         p.Fset,
			info:         p.TypesInfo,
			localizePkgs: localizePkgPaths,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.handleCallExpr(x)
				case *ast.CompositeLit:
					e.handleCompositeLit(x)
				}

				return true
			})
		}
	}

	return refs
}

// findLocalizePkgPaths returns the set of package paths in this build that
// define the localize package with a Key type whose underlying type is
// string. This lets us require that matched Tr calls and Key conversions come
// from the localize package, regardless of how it is imported or aliased.
func findLocalizePkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		if p.Name != "localize" || p.Types == nil {
			continue
		}

		obj := p.Types.Scope().Lookup("Key")

		tn, ok := obj.(*types.TypeName)
		if !ok {
			continue
		}

		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		basic, ok := named.Underlying().(*types.Basic)
		if ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	}

	return out
}

// constString evaluates expr to a constant string if possible using
// types.Info. Handles string literals, const identifiers, and constant
// expressions like "a" + "b". Non-constant expressions return false.
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isKeyNamedType reports whether t is exactly the named type localize.Key,
// with package path present in localizePkgs. Accepts both direct types and
// type aliases that resolve to localize.Key.
func isKeyNamedType(t types.Type, localizePkgs map[string]struct{}) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	if _, ok := localizePkgs[obj.Pkg().Path()]; !ok {
		return false
	}

	return obj.Name() == "Key"
}

// handleCompositeLit inspects composite literals to find implicit conversions
// to localize.Key.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	// Unwrap one level of pointer so &T{...} is treated as T{...}.
	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok && p.Elem() != nil {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		keyIsLK := isKeyNamedType(u.Key(), e.localizePkgs)

		valIsLK := isKeyNamedType(u.Elem(), e.localizePkgs)
		if !keyIsLK && !valIsLK {
			return
		}

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keyIsLK {
				if msg, ok := constString(e.info, kv.Key); ok {
					e.addRef(kv.Key.Pos(), msg)
				}
			}

			if valIsLK {
				if msg, ok := constString(e.info, kv.Value); ok {
					e.addRef(kv.Value.Pos(), msg)
				}
			}
		}

	case *types.Slice, *types.Array:
		var elemType types.Type
		if s, ok := u.(*types.Slice); ok {
			elemType = s.Elem()
		} else {
			elemType = u.(*types.Array).Elem()
		}

		if !isKeyNamedType(elemType, e.localizePkgs) {
			return
		}

		for _, elt := range x.Elts {
			if msg, ok := constString(e.info, elt); ok {
				e.addRef(elt.Pos(), msg)
			}
		}

	case *types.Struct:
		// Map field names to their types so both keyed and positional
		// literals can be handled.
		fieldTypes := make(map[string]types.Type, u.NumFields())
		for i := range u.NumFields() {
			f := u.Field(i)

			fieldTypes[f.Name()] = f.Type()
		}

		for i, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if id, ok := kv.Key.(*ast.Ident); ok {
					if ft, ok := fieldTypes[id.Name]; ok && isKeyNamedType(ft, e.localizePkgs) {
						if msg, ok := constString(e.info, kv.Value); ok {
							e.addRef(kv.Value.Pos(), msg)
						}
					}
				}

				continue
			}

			// Positional field: rely on declared field order.
			if i < u.NumFields() {
				ft := u.Field(i).Type()
				if isKeyNamedType(ft, e.localizePkgs) {
					if msg, ok := constString(e.info, elt); ok {
						e.addRef(elt.Pos(), msg)
					}
				}
			}
		}
	}
}

// handleCallExpr inspects function calls and type conversions to find
// localization keys.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	// Case 1: Type conversion, e.g., localize.Key("Greeting").
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && isKeyNamedType(tv.Type, e.localizePkgs) {
			if msg, ok := constString(e.info, x.Args[0]); ok {
				e.addRef(x.Args[0].Pos(), msg)
			}
		}

		return // This was a type conversion, handled or not.
	}

	// Case 2: Tr method calls: Tr(ctx, "key", "name", pairing, ...).
	if sel, ok := x.Fun.(*ast.SelectorExpr); ok {
		if fn, ok := e.info.Uses[sel.Sel].(*types.Func); ok && fn.Pkg() != nil {
			if _, ok := e.localizePkgs[fn.Pkg().Path()]; ok && fn.Name() == "Tr" {
				if len(x.Args) >= 2 {
					if msg, ok := constString(e.info, x.Args[1]); ok {
						e.addRef(x.Args[1].Pos(), msg)
						e.checkMarkers(x, msg)
					}
				}

				return // Handled as Tr call.
			}
		}
	}

	// Case 3: A generic function call with localize.Key parameters. This
	// handles implicit conversions for any function taking a localize.Key.
	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok {
		return
	}

	params := sig.Params()

	n := params.Len()
	if n == 0 {
		return
	}

	variadic := sig.Variadic()
	last := n - 1

	for i, arg := range x.Args {
		var pt types.Type

		if variadic && i >= last {
			// If called with ...slice, let composite literal handling
			// discover elements.
			if x.Ellipsis != token.NoPos {
				continue
			}

			pt = params.At(last).Type().(*types.Slice).Elem()
		} else {
			if i >= n {
				break
			}

			pt = params.At(i).Type()
		}

		if isKeyNamedType(pt, e.localizePkgs) {
			if msg, ok := constString(e.info, arg); ok {
				e.addRef(arg.Pos(), msg)
			}
		}
	}
}

// checkMarkers warns when a Tr call passes an interpolation name that does
// not appear as a marker in the constant key. Only constant names at the
// even variadic positions can be checked.
func (e *extractor) checkMarkers(x *ast.CallExpr, msg string) {
	markers := make(map[string]struct{})
	for _, m := range markerPattern.FindAllStringSubmatch(msg, -1) {
		markers[m[1]] = struct{}{}
	}

	for i := 2; i < len(x.Args); i += 2 {
		name, ok := constString(e.info, x.Args[i])
		if !ok {
			continue
		}

		name = strings.TrimSuffix(name, ":")
		if _, ok := markers[name]; !ok {
			p := e.fset.Position(x.Args[i].Pos())
			log.Printf("%s:%d: interpolation %q has no marker in key %q", p.Filename, p.Line, name, msg)
		}
	}
}

// addRef records a reference to a key, normalising the file path relative to
// the computed project root.
func (e *extractor) addRef(pos token.Pos, msg string) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	file = filepath.ToSlash(file)

	k := key{id: msg}

	e.refs[k] = append(e.refs[k], ref{file: file, line: p.Line})
}

// writeHeader emits a POT header.
func writeHeader(b *strings.Builder) {
	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: lokal %s\\n\"\n", detectVersion())
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", time.Now().UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintln(b, `"Language: en\n"`)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b)
}

// detectVersion resolves a human-friendly version string using git describe.
// Falls back to "dev" when git is unavailable or this is not a git checkout.
func detectVersion() string {
	cmd := exec.Command("git", "describe", "--tags", "--always", "--dirty")

	out, err := cmd.Output()
	if err != nil {
		return "dev"
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot attempts to find a stable root directory for source
// references. Preference order:
//  1. git toplevel directory
//  2. nearest parent directory that contains go.mod
//  3. the provided working directory
func findProjectRoot(wd string) string {
	if root := gitTopLevel(wd); root != "" {
		return root
	}

	if root := nearestGoModDir(wd); root != "" {
		return root
	}

	return wd
}

func gitTopLevel(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	cmd.Dir = wd

	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return ""
	}

	return filepath.Clean(root)
}

func nearestGoModDir(start string) string {
	dir := filepath.Clean(start)
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

func fileExists(path string) bool {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return true
	}

	return false
}
