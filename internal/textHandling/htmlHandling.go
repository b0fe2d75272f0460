package textHandling

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

var skipTags = map[string]struct{}{
	"script": 	{},
	"style": 	{},
	"noscript": {},
	"template": {},
}

// ExtractText returns the visible text of an HTML document. contentType is
// the value of a Content-Type header, used to pick the page encoding; it may be empty.
func ExtractText(r io.Reader, contentType string) (string, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err == io.EOF {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "detect html charset")
	}

	tokenizer := html.NewTokenizer(utf8Reader)
	var fullText strings.Builder
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			return "", errors.Wrap(tokenizer.Err(), "tokenize html")
		}

		switch tokenType {
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if _, ok := skipTags[strings.ToLower(string(name))]; ok {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if _, ok := skipTags[strings.ToLower(string(name))]; ok && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" {
				continue
			}
			if fullText.Len() > 0 {
				fullText.WriteByte(' ')
			}
			fullText.WriteString(text)
		}
	}
	return fullText.String(), nil
}
