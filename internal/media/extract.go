// Package media detects image and video references in PR bodies and
// comments, and downloads the images for the in-terminal viewer.
package media

import (
	"strings"
)

// Type distinguishes media kinds.
type Type int

const (
	Image Type = iota
	Video
)

// Ref is one media reference found in markdown text.
type Ref struct {
	Type Type
	URL  string
	Alt  string
}

// Preprocess replaces media references in body with short placeholders
// and returns the detected references in order of appearance. Handled
// patterns: markdown images, <img> and <video> tags, and bare GitHub
// attachment URLs on their own line (treated as videos).
func Preprocess(body string) (string, []Ref) {
	var refs []Ref
	var resultLines []string

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if url, ok := bareVideoURL(trimmed); ok {
			resultLines = append(resultLines, "", "[🎬 Video]", "")
			refs = append(refs, Ref{Type: Video, URL: url, Alt: "Video"})
			continue
		}

		if replaced, ok := replaceInlineMedia(line, &refs); ok {
			resultLines = append(resultLines, replaced)
			continue
		}
		resultLines = append(resultLines, line)
	}

	return collapseBlankLines(resultLines), refs
}

// CollectImageURLs returns the image URLs in body without rewriting
// the text. Used to kick off downloads before the viewer opens.
func CollectImageURLs(body string) []string {
	var urls []string
	_, refs := Preprocess(body)
	for _, r := range refs {
		if r.Type == Image {
			urls = append(urls, r.URL)
		}
	}
	return urls
}

// collapseBlankLines shrinks runs of blank lines to a single one.
func collapseBlankLines(lines []string) string {
	var b strings.Builder
	prevBlank := false
	first := true
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		prevBlank = blank
		first = false
	}
	return b.String()
}

// bareVideoURL reports whether the line is a lone GitHub attachment
// URL. Those often have no extension (just a UUID); a bare URL not
// wrapped in markdown image syntax is assumed to be a video.
func bareVideoURL(line string) (string, bool) {
	isAsset := strings.HasPrefix(line, "https://github.com/user-attachments/assets/") ||
		strings.HasPrefix(line, "https://private-user-images.githubusercontent.com/")
	if !isAsset {
		return "", false
	}
	return line, true
}

// replaceInlineMedia rewrites the markdown images and img/video tags
// of one line to placeholders. Returns ok=false when the line holds no
// media.
func replaceInlineMedia(line string, refs *[]Ref) (string, bool) {
	var b strings.Builder
	matched := false

	for pos := 0; pos < len(line); {
		if line[pos] == '!' && pos+1 < len(line) && line[pos+1] == '[' {
			if alt, url, end, ok := parseMarkdownImage(line, pos); ok {
				matched = true
				if alt == "" {
					alt = "Image"
				}
				b.WriteString("[🖼 " + alt + "]")
				*refs = append(*refs, Ref{Type: Image, URL: url, Alt: alt})
				pos = end
				continue
			}
		}
		if line[pos] == '<' {
			rest := line[pos:]
			lower := strings.ToLower(rest)
			if strings.HasPrefix(lower, "<img ") || strings.HasPrefix(lower, "<img>") {
				if alt, url, end, ok := parseHTMLImg(rest); ok {
					matched = true
					if alt == "" {
						alt = "Image"
					}
					b.WriteString("[🖼 " + alt + "]")
					*refs = append(*refs, Ref{Type: Image, URL: url, Alt: alt})
					pos += end
					continue
				}
			}
			if strings.HasPrefix(lower, "<video ") || strings.HasPrefix(lower, "<video>") {
				if url, end, ok := parseHTMLVideo(rest); ok {
					matched = true
					b.WriteString("[🎬 Video]")
					*refs = append(*refs, Ref{Type: Video, URL: url, Alt: "Video"})
					pos += end
					continue
				}
			}
		}
		b.WriteByte(line[pos])
		pos++
	}

	if !matched {
		return "", false
	}
	return b.String(), true
}

// parseMarkdownImage parses "![alt](url)" starting at the '!'.
func parseMarkdownImage(line string, start int) (alt, url string, end int, ok bool) {
	afterBang := start + 2
	altEnd := strings.IndexByte(line[afterBang:], ']')
	if altEnd < 0 {
		return "", "", 0, false
	}
	alt = line[afterBang : afterBang+altEnd]

	parenStart := afterBang + altEnd + 1
	if parenStart >= len(line) || line[parenStart] != '(' {
		return "", "", 0, false
	}
	urlStart := parenStart + 1
	parenEnd := strings.IndexByte(line[urlStart:], ')')
	if parenEnd < 0 {
		return "", "", 0, false
	}
	return alt, line[urlStart : urlStart+parenEnd], urlStart + parenEnd + 1, true
}

// parseHTMLImg parses an "<img ...>" tag at the start of tag.
func parseHTMLImg(tag string) (alt, url string, end int, ok bool) {
	end, ok = findTagEnd(tag)
	if !ok {
		return "", "", 0, false
	}
	content := tag[:end]
	url, ok = htmlAttr(content, "src")
	if !ok {
		return "", "", 0, false
	}
	alt, _ = htmlAttr(content, "alt")
	return alt, url, end, true
}

// parseHTMLVideo parses a "<video ...>" tag at the start of tag,
// consuming a "</video>" close tag when present.
func parseHTMLVideo(tag string) (url string, end int, ok bool) {
	openEnd, ok := findTagEnd(tag)
	if !ok {
		return "", 0, false
	}
	url, ok = htmlAttr(tag[:openEnd], "src")
	if !ok {
		return "", 0, false
	}
	rest := strings.ToLower(tag[openEnd:])
	if closePos := strings.Index(rest, "</video>"); closePos >= 0 {
		return url, openEnd + closePos + len("</video>"), true
	}
	return url, openEnd, true
}

// findTagEnd returns the offset just past "/>" or ">".
func findTagEnd(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '/' && i+1 < len(s) && s[i+1] == '>' {
			return i + 2, true
		}
		if s[i] == '>' {
			return i + 1, true
		}
	}
	return 0, false
}

// htmlAttr extracts a double-quoted attribute value, e.g.
// src="value".
func htmlAttr(tag, name string) (string, bool) {
	lower := strings.ToLower(tag)
	idx := strings.Index(lower, name+`="`)
	if idx < 0 {
		return "", false
	}
	valueStart := idx + len(name) + 2
	rest := tag[valueStart:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
