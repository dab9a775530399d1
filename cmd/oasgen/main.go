package main

import (
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"

	"github.com/oasbuild/oasgen/document"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "query":
		queryCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	case "fmt":
		fmtCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "oasgen CLI\n\nUsage:\n  oasgen query -f <jq expression> <doc.json|doc.yaml>\n  oasgen validate <doc.json|doc.yaml>\n  oasgen fmt [-o json|yaml] <doc.json|doc.yaml>\n\nNotes:\n  - Documents are OpenAPI 3.0 files as produced by the document package; JSON and YAML are both accepted.")
}

// queryCmd runs a jq filter over a generated document and prints each result
// as one JSON line.
func queryCmd(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	var expr string
	fs.StringVar(&expr, "f", ".", "jq expression to run against the document")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	doc := loadDoc(fs.Arg(0))

	query, err := gojq.Parse(expr)
	if err != nil {
		fatalf("invalid jq expression: %v", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		fatalf("compiling jq expression: %v", err)
	}
	iter := code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if qerr, isErr := v.(error); isErr {
			fatalf("query: %v", qerr)
		}
		b, err := json.Marshal(v)
		if err != nil {
			fatalf("encoding result: %v", err)
		}
		fmt.Println(string(b))
	}
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	path := fs.Arg(0)
	if err := document.ValidateSpec(loadDoc(path)); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("%s: ok\n", path)
}

func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	var out string
	fs.StringVar(&out, "o", "json", "output encoding: json or yaml")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	doc := loadDoc(fs.Arg(0))
	switch out {
	case "json":
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fatalf("encoding JSON: %v", err)
		}
		fmt.Println(string(b))
	case "yaml":
		b, err := yaml.Marshal(doc)
		if err != nil {
			fatalf("encoding YAML: %v", err)
		}
		fmt.Print(string(b))
	default:
		fatalf("unknown output encoding %q", out)
	}
}

func loadDoc(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading %s: %v", path, err)
	}
	doc, err := document.Load(data)
	if err != nil {
		fatalf("%v", err)
	}
	return doc
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "oasgen: "+format+"\n", a...)
	os.Exit(1)
}
