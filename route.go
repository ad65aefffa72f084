package ogengine

import "strings"

// reservedSegments are top-level paths that must never be treated as a
// property slug.
//
// NOTE: any new top-level page has to be added here, otherwise a request
// for it is looked up as a property.
var reservedSegments = map[string]struct{}{
	"about":                      {},
	"airbnb":                     {},
	"for-sale":                   {},
	"blog":                       {},
	"contact":                    {},
	"guest-help":                 {},
	"vacation-rental-management": {},
	"payment":                    {},
	"payment-success":            {},
	"privacy-policy":             {},
	"we-do-better":               {},
	"favorites":                  {},
	"admin":                      {},
}

// staticPaths maps exact request paths to the static page bundle name.
var staticPaths = map[string]string{
	"/":                           "home",
	"/airbnb":                     "airbnb",
	"/for-sale":                   "for-sale",
	"/about":                      "about",
	"/contact":                    "contact",
	"/guest-help":                 "guest-help",
	"/vacation-rental-management": "vacation-rental-management",
	"/payment":                    "payment",
	"/payment-success":            "payment-success",
	"/privacy-policy":             "privacy-policy",
	"/we-do-better":               "we-do-better",
	"/favorites":                  "favorites",
}

// Classify maps a request path to the kind of page it renders.
func Classify(path string) RouteMatch {
	path = normalizePath(path)
	segments := splitSegments(path)

	if len(segments) > 0 && segments[0] == "blog" {
		switch {
		case len(segments) >= 3:
			return RouteMatch{Kind: RouteBlogPost, Slug: segments[len(segments)-1]}
		default:
			return RouteMatch{Kind: RouteBlogListing}
		}
	}

	if len(segments) >= 2 && segments[0] == "property" {
		return RouteMatch{Kind: RouteProperty, Slug: segments[1]}
	}
	if len(segments) == 1 {
		if !IsReserved(segments[0]) {
			return RouteMatch{Kind: RouteProperty, Slug: segments[0]}
		}
	}

	if page, ok := staticPaths[path]; ok {
		return RouteMatch{Kind: RouteStaticPage, Page: page}
	}
	return RouteMatch{Kind: RouteUnknown}
}

// IsReserved reports whether name is a reserved top-level segment.
func IsReserved(name string) bool {
	_, ok := reservedSegments[name]
	return ok
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func splitSegments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
