package kbscrape

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// ContentSections are path fragments that mark content-bearing site sections.
// They double as crawl seeds.
var ContentSections = []string{
	"/blog", "/posts", "/post", "/articles", "/article", "/news", "/insights",
	"/stories", "/writings", "/write", "/read", "/content", "/publications",
	"/publish", "/learn", "/learning", "/guides", "/guide", "/tutorials",
	"/tutorial", "/how-to", "/howto", "/how_to", "/lessons", "/courses",
	"/course", "/education", "/training", "/workshop", "/webinar", "/docs",
	"/documentation", "/doc", "/api", "/reference", "/manual", "/help",
	"/support", "/faq", "/faqs", "/kb", "/knowledge-base", "/knowledge",
	"/wiki", "/resources", "/resource", "/tech", "/technical", "/engineering",
	"/development", "/programming", "/coding", "/code", "/developers", "/dev",
	"/labs", "/research", "/podcast", "/podcasts", "/video", "/videos",
	"/media", "/press", "/updates", "/changelog", "/releases",
	"/announcements", "/community", "/forum", "/forums", "/discussion",
	"/thoughts", "/opinions", "/perspectives", "/ideas", "/tips", "/topics",
	"/topic", "/categories", "/category", "/cat", "/tag", "/subject",
	"/subjects", "/area", "/areas", "/section", "/case-study", "/case-studies",
	"/cases", "/examples", "/example", "/showcase", "/portfolio", "/work",
	"/projects", "/about", "/team", "/careers", "/culture", "/values",
	"/mission", "/events", "/event", "/conference", "/meetup", "/talks",
	"/archive", "/archives", "/history", "/timeline", "/recent", "/latest",
	"/new", "/trending", "/popular", "/featured",
}

// skipExtensions are file types that never hold page content.
var skipExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".zip": true, ".rar": true, ".mp4": true,
	".mp3": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".exe": true, ".dmg": true, ".iso": true, ".tar": true,
	".gz": true,
}

var contentKeywords = regexp.MustCompile(`(?i)` +
	`tutorial|guide|article|blog|post|story|lesson|course|` +
	`how-to|howto|how_to|tip|trick|example|study|case|` +
	`learn|teach|explain|understand|master|practice|` +
	`introduction|intro|basic|advanced|beginner|intermediate|` +
	`documentation|docs|reference|manual|handbook|` +
	`resource|material|content|information|knowledge|` +
	`update|announcement|release|changelog|news|` +
	`insight|thought|opinion|perspective|analysis|` +
	`technical|tech|engineering|development|programming|` +
	`podcast|video|webinar|presentation|talk|` +
	`faq|help|support|troubleshoot|solve|fix|` +
	`best-practice|pattern|approach|method|technique|` +
	`framework|library|tool|platform|service|` +
	`review|comparison|versus|alternative|option`)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/\d{4}/\d{2}/`),
	regexp.MustCompile(`/\d{4}/\d{1,2}/`),
	regexp.MustCompile(`/\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`/\d{8}/`),
}

var structurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/[a-z-]+/[a-z0-9-]+/?$`),
	regexp.MustCompile(`(?i)/\d+/[a-z0-9-]+/?$`),
	regexp.MustCompile(`(?i)/[a-z]{2}/[a-z-]+/?$`),
	regexp.MustCompile(`(?i)/[a-z-]+/\d{4}/`),
	regexp.MustCompile(`(?i)/(p|page|post|article)/\d+`),
}

var longSlug = regexp.MustCompile(`(?i)[a-z0-9-]{10,}`)

// excludePatterns match non-content URLs: pagination, auth, legal, commerce,
// feeds, errors, search, contact and print/download pages.
var excludePatterns = compileAll(
	`/page/\d+$`, `/p/\d+$`, `\?page=\d+`,
	`/tag/?$`, `/tags/?$`, `/category/?$`, `/categories/?$`, `/author/?$`, `/authors/?$`,
	`/login/?$`, `/signin/?$`, `/signup/?$`, `/register/?$`, `/logout/?$`,
	`/account/?$`, `/profile/?$`, `/settings/?$`, `/dashboard/?$`, `/admin`, `/wp-admin`,
	`/privacy/?$`, `/terms/?$`, `/tos/?$`, `/disclaimer/?$`,
	`/cookie`, `/gdpr`, `/legal/?$`, `/policy/?$`,
	`/cart/?$`, `/checkout/?$`, `/shop/?$`, `/store/?$`,
	`/products?/?$`, `/pricing/?$`, `/plans/?$`, `/subscribe/?$`,
	`\.xml$`, `\.json$`, `/feed/?$`, `/rss/?$`, `/atom/?$`,
	`/sitemap`, `/robots\.txt$`, `/#`,
	`/404/?$`, `/error/?$`, `/500/?$`, `/403/?$`,
	`/search/?$`, `\?q=`, `\?s=`, `/filter/?$`,
	`/contact/?$`, `/contact-us/?$`,
	`/print/?$`, `\.pdf$`, `/download/?$`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// ResolveReference resolves href against the page it appeared on. Non-HTTP
// schemes (javascript:, mailto:, tel:, data:) and unparsable hrefs are
// dropped. The fragment and query string are stripped.
func ResolveReference(pageURL *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := pageURL.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Fragment = ""
	resolved.RawFragment = ""
	resolved.RawQuery = ""
	resolved.ForceQuery = false
	return resolved.String(), true
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// Canonicalize reduces rawURL to the form used for deduplication: an
// absolute http(s) URL on baseHost with no query or fragment. It reports
// false for other hosts, non-HTTP schemes and skip-listed file extensions.
// Canonicalize(Canonicalize(u)) == Canonicalize(u).
func Canonicalize(rawURL, baseHost string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" || !strings.EqualFold(u.Host, baseHost) {
		return "", false
	}
	if hasSkipExtension(u.Path) {
		return "", false
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = ""
	u.ForceQuery = false
	u.User = nil
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return u.String(), true
}

func hasSkipExtension(p string) bool {
	return skipExtensions[strings.ToLower(path.Ext(p))]
}

// IsContentCandidate reports whether the URL looks like it leads to content:
// its path contains a content section, matches a topical keyword, carries a
// date segment, or has an article-like shape. Skip-listed file extensions are
// never candidates.
func IsContentCandidate(rawURL string) bool {
	p := urlPath(rawURL)
	if hasSkipExtension(p) {
		return false
	}

	lower := strings.ToLower(p)
	for _, section := range ContentSections {
		if strings.Contains(lower, section) {
			return true
		}
	}
	if contentKeywords.MatchString(lower) {
		return true
	}
	for _, re := range datePatterns {
		if re.MatchString(p) {
			return true
		}
	}
	for _, re := range structurePatterns {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// KeepCandidate decides whether a discovered URL belongs in the final
// candidate set. The bare base URL is never kept. A URL matching a
// non-content pattern is dropped unless it also shows a content signal.
func KeepCandidate(rawURL, baseURL string) bool {
	if strings.EqualFold(strings.TrimSuffix(rawURL, "/"), strings.TrimSuffix(baseURL, "/")) {
		return false
	}

	excluded := false
	for _, re := range excludePatterns {
		if re.MatchString(rawURL) {
			excluded = true
			break
		}
	}
	if !excluded {
		return true
	}

	return IsContentCandidate(rawURL) || hasArticleSlug(urlPath(rawURL))
}

// hasArticleSlug reports a path at least two segments deep with a long slug.
func hasArticleSlug(p string) bool {
	segments := 0
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments++
		}
	}
	return segments >= 2 && longSlug.MatchString(p)
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
