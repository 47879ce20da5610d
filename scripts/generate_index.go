// Generates the release landing page: renders README.md to HTML and swaps
// its Installation section for a download table built from the archives in
// the goreleaser dist directory. Run after a release build:
//
//	go run scripts/generate_index.go dist
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: generate_index <dist-dir>")
	}
	distDir := args[0]

	readme, err := os.ReadFile("README.md")
	if err != nil {
		return fmt.Errorf("reading README.md: %w", err)
	}

	archives, err := listArchives(distDir)
	if err != nil {
		return fmt.Errorf("reading dist dir: %w", err)
	}

	body := injectDownloads(renderReadme(readme), downloadsSection(archives, detectVersion(archives)))

	indexPath := filepath.Join(distDir, "index.html")
	page := pageHeader + string(body) + pageFooter
	if err := os.WriteFile(indexPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", indexPath, err)
	}
	fmt.Fprintf(os.Stderr, "generated %s\n", indexPath)
	return nil
}

// renderReadme converts README markdown to HTML with heading anchors, so
// the Installation section is addressable by id.
func renderReadme(src []byte) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	doc := parser.NewWithExtensions(extensions).Parse(src)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	return markdown.Render(doc, renderer)
}

// listArchives returns the release archive filenames in distDir, sorted,
// skipping checksums and non-archive artifacts.
func listArchives(distDir string) ([]string, error) {
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return nil, err
	}
	var archives []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.Contains(name, "SHA256") {
			continue
		}
		if strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".zip") {
			archives = append(archives, name)
		}
	}
	sort.Strings(archives)
	return archives, nil
}

// archivePattern matches goreleaser names like
// treex_0.3.0_Linux_x86_64.tar.gz and captures the version.
var archivePattern = regexp.MustCompile(`^treex_([^_]+(?:-[^_]+)*)_[A-Za-z]+_[A-Za-z0-9_]+\.(?:tar\.gz|zip)$`)

func detectVersion(archives []string) string {
	for _, name := range archives {
		if m := archivePattern.FindStringSubmatch(name); m != nil {
			return m[1]
		}
	}
	return "unknown"
}

// platformLabels maps archive-name fragments to display labels, in the
// order the download table lists them.
var platformLabels = []struct {
	fragment string
	label    string
}{
	{"Darwin_arm64", "macOS (Apple Silicon)"},
	{"Darwin_x86_64", "macOS (Intel)"},
	{"Linux_arm64", "Linux (ARM64)"},
	{"Linux_x86_64", "Linux (x86_64)"},
	{"Windows_arm64", "Windows (ARM64)"},
	{"Windows_x86_64", "Windows (x86_64)"},
}

func downloadsSection(archives []string, version string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"downloads\">\n<h3>%s</h3>\n<table>\n", version)
	for _, plat := range platformLabels {
		for _, name := range archives {
			if strings.Contains(name, plat.fragment) {
				fmt.Fprintf(&b, "<tr><td>%s</td><td><a href=\"%s\">download</a></td></tr>\n", plat.label, name)
				break
			}
		}
	}
	b.WriteString("</table>\n</div>\n")
	return b.String()
}

// injectDownloads replaces everything between the Installation heading and
// the next h2 with the download table. The README is left untouched when
// the heading is missing.
func injectDownloads(body []byte, downloads string) []byte {
	page := string(body)
	start := strings.Index(page, `<h2 id="installation">`)
	if start < 0 {
		return body
	}
	rest := page[start:]
	end := strings.Index(rest[1:], "<h2 id=")
	if end < 0 {
		end = len(rest) - 1
	}
	replacement := "<h2 id=\"installation\">Installation</h2>\n" + downloads
	return []byte(page[:start] + replacement + rest[end+1:])
}

const pageHeader = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>treex - searchable tree explorer</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 860px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #222; }
    h1, h2 { color: #166534; }
    h1 { border-bottom: 2px solid #166534; padding-bottom: 8px; }
    code { background: #f3f4f6; padding: 2px 5px; border-radius: 3px; font-size: 0.9em; }
    pre { background: #111827; color: #e5e7eb; padding: 14px; border-radius: 6px; overflow-x: auto; }
    pre code { background: none; padding: 0; }
    .downloads { background: #f0fdf4; border-left: 4px solid #166534; padding: 16px; border-radius: 6px; }
    .downloads table { border-collapse: collapse; width: 100%; }
    .downloads td { padding: 5px 8px; }
    .downloads a { color: #166534; font-weight: 500; }
  </style>
</head>
<body>
`

const pageFooter = `</body>
</html>
`
