package osid

import (
	"regexp"
	"strings"
)

// sshVersionRe pulls the OpenSSH version out of a banner like
// "SSH-2.0-OpenSSH_6.6.1p1 Ubuntu-2ubuntu2.4" and captures whatever trails
// the patch-level suffix as the distro tag, whether it's space-separated
// (Debian/Ubuntu) or hyphen-glued directly onto the version (EL's
// "OpenSSH_6.6.1p1-RHEL7-...").
var sshVersionRe = regexp.MustCompile(`OpenSSH_([0-9]+(?:\.[0-9]+)+)(?:p[0-9]+)?([^\r\n]*)`)

type sshInfo struct {
	Version string
	Tag     string
}

func extractSSH(banners []string) (sshInfo, bool) {
	for _, b := range banners {
		if m := sshVersionRe.FindStringSubmatch(b); m != nil {
			return sshInfo{Version: m[1], Tag: m[2]}, true
		}
	}
	return sshInfo{}, false
}

// majorMinor truncates a dotted version to its first two components, which
// is the granularity the release-version tables are keyed at.
func majorMinor(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) >= 2 {
		return parts[0] + "." + parts[1]
	}
	return version
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyBannerContains(banners []string, substr string) bool {
	for _, b := range banners {
		if containsFold(b, substr) {
			return true
		}
	}
	return false
}
