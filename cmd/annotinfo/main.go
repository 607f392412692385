// Command annotinfo inspects an annotation sidecar file and prints a
// per-page summary.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/project"
)

func main() {
	path := flag.String("file", "", "Path to a .annot.json sidecar")
	document := flag.String("document", "", "Resolve the sidecar for this document instead")
	flag.Parse()

	target := *path
	if target == "" && *document != "" {
		target = project.SidecarPath(*document)
	}
	if target == "" {
		fmt.Println("Usage: annotinfo -file <path.annot.json> | -document <path>")
		os.Exit(1)
	}

	f, err := project.Load(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", target, err)
		os.Exit(1)
	}

	fmt.Printf("Document: %s\n", f.Document)
	fmt.Printf("Version:  %d\n", f.Version)
	fmt.Printf("Created:  %s\n", f.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("Modified: %s\n", f.Modified.Format("2006-01-02 15:04:05"))

	pages := make([]int, 0, len(f.Pages))
	for page := range f.Pages {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	total := 0
	for _, page := range pages {
		annots := f.Pages[page]
		if len(annots) == 0 {
			continue
		}
		total += len(annots)

		byKind := make(map[annotation.Kind]int)
		for _, a := range annots {
			byKind[a.Kind]++
		}
		fmt.Printf("\nPage %d: %d annotation(s)\n", page+1, len(annots))
		kinds := make([]annotation.Kind, 0, len(byKind))
		for k := range byKind {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			fmt.Printf("  %-12s %d\n", k, byKind[k])
		}
	}

	fmt.Printf("\nTotal: %d annotation(s) on %d page(s)\n", total, len(pages))
}
