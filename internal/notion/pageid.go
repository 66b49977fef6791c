package notion

import (
	"fmt"
	"net/url"
	"regexp"
)

// pageIDPattern matches a 32-character page ID or its dashed UUID form
// anywhere inside a Notion URL.
var pageIDPattern = regexp.MustCompile(`([a-zA-Z0-9]{32})|([a-zA-Z0-9]{8}-[a-zA-Z0-9]{4}-[a-zA-Z0-9]{4}-[a-zA-Z0-9]{4}-[a-zA-Z0-9]{12})`)

// ExtractPageID pulls the page ID out of a Notion URL. The URL is decoded
// first so localized page titles do not interfere with matching.
func ExtractPageID(notionURL string) (string, error) {
	decoded, err := url.QueryUnescape(notionURL)
	if err != nil {
		decoded = notionURL
	}

	if match := pageIDPattern.FindString(decoded); match != "" {
		return match, nil
	}

	return "", fmt.Errorf("no Notion page ID found in URL %q", notionURL)
}
