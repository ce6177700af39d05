// Command visitorgen generates a statically exhaustive visitor for a closed family of element types.
//
// Annotate every element type of the family:
//
//	// Hayes modem.
//	// @Element(Modem)
//	type Hayes struct{}
//
// and run `visitorgen -family Modem` in the package directory. It writes modem_visitor.go with the
// tag constants, the closed tag set, Tag methods, a ModemVisitor interface and its adapters.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/token"
	"log"
	"os"
	"path/filepath"

	"github.com/go-leo/gox/slicex"
	"golang.org/x/tools/go/packages"

	"github.com/go-leo/behavior/cmd/visitorgen/internal"
)

var (
	familyName = flag.String("family", "", "element family name, as in @Element(<family>). (required)")
)

// Usage is a replacement usage function for the flags package.
func Usage() {
	fmt.Fprintf(os.Stderr, "Usage of visitorgen:\n")
	fmt.Fprintf(os.Stderr, "\tvisitorgen -family Modem [directory]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("visitorgen: ")
}

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = Usage
	flag.Parse()
	if *showVersion {
		fmt.Printf("visitorgen %v\n", internal.Version)
		return
	}

	if len(*familyName) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"."}
	}

	pkg := loadPkg(args)
	elements := inspect(pkg, *familyName)
	if len(elements) == 0 {
		log.Fatalf("error: no type annotated with %s(%s) in %s", internal.Element, *familyName, pkg.PkgPath)
	}

	dir := args[0]
	if len(pkg.GoFiles) > 0 {
		dir = filepath.Dir(pkg.GoFiles[0])
	}
	file := internal.NewFile(dir, pkg.Name, *familyName, elements)
	if err := file.Gen(); err != nil {
		log.Fatalf("%s.%s error: %s", pkg.PkgPath, *familyName, err)
	}
	log.Printf("%s.%s wrote %s (%d elements)", pkg.PkgPath, *familyName, file.AbsFilename, len(elements))
}

func loadPkg(args []string) *packages.Package {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, args...)
	if err != nil {
		log.Fatal(err)
	}
	if len(pkgs) != 1 {
		log.Fatalf("error: %d packages found", len(pkgs))
	}
	return pkgs[0]
}

// inspect returns, in source order, the struct types annotated as members of family.
func inspect(pkg *packages.Package, family string) []string {
	var elements []string
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, ok := typeSpec.Type.(*ast.StructType); !ok {
					continue
				}
				doc := typeSpec.Doc
				if doc == nil && len(genDecl.Specs) == 1 {
					doc = genDecl.Doc
				}
				if doc == nil {
					continue
				}
				comments := slicex.Map[[]*ast.Comment, []string](
					doc.List,
					func(i int, e1 *ast.Comment) string { return e1.Text },
				)
				if f, ok := internal.FamilyOf(comments); ok && f == family {
					elements = append(elements, typeSpec.Name.Name)
				}
			}
		}
	}
	return elements
}
