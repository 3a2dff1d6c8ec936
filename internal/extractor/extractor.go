package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
	"github.com/custodia-labs/rosetta-mirror/internal/languages"
	"github.com/custodia-labs/rosetta-mirror/internal/logger"
)

var (
	nowikiPattern = regexp.MustCompile(`(?s)<nowiki>.*?</nowiki>`)

	// headerPattern matches a header line such as "==={{header|Go}}===".
	headerPattern = regexp.MustCompile(`(?m)^==+[ \t]*\{\{[Hh]eader\|(.*?)\}\}`)

	langOpenPattern  = regexp.MustCompile(`(?i)<lang(?:\s[^>]*)?>`)
	langBlockPattern = regexp.MustCompile(`(?is)<lang(?:\s[^>]*)?>(.*?)</lang\s*>`)
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Segment is the text following one header line, up to the next header
// line or the end of the page.
type Segment struct {
	Language string
	Body     string
}

// codeFile is one code block and its path relative to the mirror root.
type codeFile struct {
	dir  string
	path string
	code string
}

// Extractor writes code blocks to the filesystem.
type Extractor struct{}

// Verify interface compliance.
var _ driven.Extractor = (*Extractor)(nil)

// New creates an extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract writes every code block of a page beneath root and returns the
// written paths relative to root.
func (e *Extractor) Extract(langs driven.LanguageDirectory, root, title, wikitext string) ([]string, error) {
	segments, err := Segments(wikitext)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", title, err)
	}

	taskSlug := languages.TaskSlug(title)
	if taskSlug == "" {
		return nil, fmt.Errorf("extract %q: %w: empty task name", title, domain.ErrMalformedPage)
	}
	stem := strings.ToLower(taskSlug)

	// Parse every segment before writing, so a page that fails anywhere
	// leaves nothing on disk.
	var files []codeFile
	for _, seg := range segments {
		blocks, err := CodeBlocks(seg.Body)
		if err != nil {
			return nil, fmt.Errorf("extract %q, language %q: %w", title, seg.Language, err)
		}
		if len(blocks) == 0 {
			logger.Debug("extract %q: no code for %q", title, seg.Language)
			continue
		}

		lang := langs.Resolve(seg.Language)
		if lang.Slug == "" {
			return nil, fmt.Errorf("extract %q: %w: header without language", title, domain.ErrMalformedPage)
		}

		dir := filepath.Join(taskSlug, lang.Slug)
		for i, code := range blocks {
			name := stem
			if len(blocks) > 1 {
				name += "-" + strconv.Itoa(i+1)
			}
			files = append(files, codeFile{
				dir:  dir,
				path: filepath.Join(dir, name+"."+lang.Extension),
				code: code,
			})
		}
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.MkdirAll(filepath.Join(root, f.dir), dirPerm); err != nil {
			return written, fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
		}
		if err := os.WriteFile(filepath.Join(root, f.path), []byte(f.code), filePerm); err != nil {
			return written, fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
		}
		written = append(written, f.path)
	}

	logger.Debug("extract %q: wrote %d file(s)", title, len(written))
	return written, nil
}

// Segments removes nowiki spans and splits a page into header segments.
// A page without any header line is malformed.
func Segments(wikitext string) ([]Segment, error) {
	text := nowikiPattern.ReplaceAllString(wikitext, "")

	matches := headerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no language header", domain.ErrMalformedPage)
	}

	segments := make([]Segment, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segments = append(segments, Segment{
			Language: text[m[2]:m[3]],
			Body:     text[m[1]:end],
		})
	}
	return segments, nil
}

// CodeBlocks returns the bodies of the <lang> blocks of a segment,
// byte for byte. Every opening tag must be closed.
func CodeBlocks(body string) ([]string, error) {
	opened := len(langOpenPattern.FindAllStringIndex(body, -1))

	matches := langBlockPattern.FindAllStringSubmatch(body, -1)
	if len(matches) != opened {
		return nil, fmt.Errorf("%w: %d <lang> tag(s), %d complete block(s)", domain.ErrMalformedFormat, opened, len(matches))
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	return blocks, nil
}
