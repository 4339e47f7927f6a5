package main

import (
	"fmt"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/inspect"
)

const version = "0.1.0"

func usage() {
	fmt.Println("\nUsage: docforge <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  inspect <file> [--dump]    Summarize the parts and tables of a .docx or .pptx")
	fmt.Println("  version                    Show version information")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("docforge - Layout engine for DOCX/PPTX documents")
		usage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "version":
		fmt.Printf("docforge version %s\n", version)
	case "inspect":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		dump := len(os.Args) > 3 && os.Args[3] == "--dump"
		if err := runInspect(os.Args[2], dump); err != nil {
			fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}

func runInspect(path string, dump bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	summary, err := inspect.ReadFile(path)
	if err != nil {
		return err
	}
	if dump {
		pp.Println(summary)
		return nil
	}

	fmt.Printf("%s: %s package, %s, %d parts\n", path, summary.Format, humanize.Bytes(uint64(info.Size())), len(summary.Parts))
	for _, p := range summary.Unreachable {
		fmt.Printf("  unreachable part %s\n", p)
	}
	for _, note := range summary.Notes {
		fmt.Printf("  note: %s\n", note)
	}
	if summary.Slides > 0 {
		fmt.Printf("  %d slides\n", summary.Slides)
	}
	for i, t := range summary.Tables {
		fmt.Printf("  table %d: %d rows\n", i+1, len(t.Rows))
		for j, row := range t.Rows {
			cells := make([]string, len(row.Cells))
			for k, c := range row.Cells {
				cells[k] = describeCell(c)
			}
			fmt.Printf("    row %d (%d twips): %s\n", j+1, row.Width(), strings.Join(cells, " | "))
		}
	}
	return nil
}

func describeCell(c inspect.Cell) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", c.Width)
	if c.GridSpan > 1 {
		fmt.Fprintf(&sb, " span=%d", c.GridSpan)
	}
	if c.VMerge != inspect.MergeNone {
		fmt.Fprintf(&sb, " vmerge=%s", c.VMerge)
	}
	if c.Text != "" {
		text := c.Text
		if len([]rune(text)) > 24 {
			text = string([]rune(text)[:24]) + "..."
		}
		fmt.Fprintf(&sb, " %q", text)
	}
	return sb.String()
}
