// Package signature recovers method parameter names from Go source.
//
// Reflection keeps parameter types but drops their names, and conditions are
// addressed by parameter name, so the names are read from the declaring source.
package signature

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Exported variables.
var (
	ErrTypeNotFound = errors.New("no methods declared for type")
)

// Table maps a method name to its ordered parameter names.
type Table map[string][]string

// Parse reads Go source and collects the parameter names of every method
// declared on typeName, either as a receiver or as an interface type.
func Parse(src, typeName string) (Table, error) {
	file, err := decorator.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	table := collect(file, typeName)
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, typeName)
	}

	return table, nil
}

// ParseFile is Parse over the contents of path.
func ParseFile(path, typeName string) (Table, error) {
	content, err := os.ReadFile(path) //nolint:gosec // caller-chosen source file
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(string(content), typeName)
}

// Positional returns the default name for the parameter at index.
func Positional(index int) string {
	return "a" + strconv.Itoa(index+1)
}

func collect(file *dst.File, typeName string) Table {
	table := make(Table)

	for _, decl := range file.Decls {
		switch typed := decl.(type) {
		case *dst.FuncDecl:
			if typed.Recv == nil || len(typed.Recv.List) == 0 {
				continue
			}

			if receiverName(typed.Recv.List[0].Type) != typeName {
				continue
			}

			table[typed.Name.Name] = paramNames(typed.Type)
		case *dst.GenDecl:
			for _, spec := range typed.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok || typeSpec.Name.Name != typeName {
					continue
				}

				iface, ok := typeSpec.Type.(*dst.InterfaceType)
				if !ok || iface.Methods == nil {
					continue
				}

				for _, method := range iface.Methods.List {
					funcType, ok := method.Type.(*dst.FuncType)
					if !ok || len(method.Names) == 0 {
						continue
					}

					table[method.Names[0].Name] = paramNames(funcType)
				}
			}
		}
	}

	return table
}

// paramNames expands grouped fields ("a, b int") and fills unnamed or blank
// parameters with their positional name.
func paramNames(funcType *dst.FuncType) []string {
	var names []string

	if funcType.Params == nil {
		return names
	}

	for _, field := range funcType.Params.List {
		if len(field.Names) == 0 {
			names = append(names, Positional(len(names)))

			continue
		}

		for _, ident := range field.Names {
			if ident.Name == "_" {
				names = append(names, Positional(len(names)))

				continue
			}

			names = append(names, ident.Name)
		}
	}

	return names
}

// receiverName strips pointers and type parameters from a receiver type.
func receiverName(expr dst.Expr) string {
	switch typed := expr.(type) {
	case *dst.Ident:
		return typed.Name
	case *dst.StarExpr:
		return receiverName(typed.X)
	case *dst.IndexExpr:
		return receiverName(typed.X)
	case *dst.IndexListExpr:
		return receiverName(typed.X)
	case *dst.ParenExpr:
		return receiverName(typed.X)
	default:
		return ""
	}
}
