package git

import (
	"regexp"

	"github.com/fwojciec/docsync"
)

// Accepted repository URL shapes.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://github\.com/[\w.-]+/[\w.-]+?(\.git)?/?$`),
	regexp.MustCompile(`^https://gitlab\.com/[\w.-]+(/[\w.-]+)+?(\.git)?/?$`),
	regexp.MustCompile(`^https://[\w.-]+(:\d+)?/[\w./~-]+\.git$`),
	regexp.MustCompile(`^git@[\w.-]+:[\w./~-]+\.git$`),
}

// ValidateURL returns an EINVALID error unless url is a GitHub or GitLab
// HTTPS URL, an HTTPS URL ending in .git, or an SSH git@host:path.git URL.
func ValidateURL(url string) error {
	if url == "" {
		return docsync.Errorf(docsync.EINVALID, "git repository URL required")
	}
	for _, re := range urlPatterns {
		if re.MatchString(url) {
			return nil
		}
	}
	return docsync.Errorf(docsync.EINVALID,
		"invalid git URL %q: expected https://github.com/..., https://gitlab.com/..., an https URL ending in .git, or git@host:path.git", url)
}
