package osid

import (
	"regexp"
	"strconv"
	"strings"
)

// DebianIdentifier recognizes Debian from its OpenSSH package suffix:
// "Debian-5+deb8u1" carries the release number right there in the "deb8u1"
// security-update tag, and "Debian-6+squeeze" names the release by its
// codename, resolved via debianCodenameToRelease in tables.go.
type DebianIdentifier struct{}

var (
	debianSecurityTag = regexp.MustCompile(`Debian-\d+\+deb(\d+)u\d+`)
	debianReleaseTag  = regexp.MustCompile(`Debian-\d+\+(\w+)`)
)

func (DebianIdentifier) Scan(banners []string) (Result, bool) {
	ssh, ok := extractSSH(banners)
	if !ok {
		return Result{}, false
	}
	// Ubuntu's OpenSSH packaging also starts its suffix with "Debian-" on
	// occasion, but always carries "ubuntu" somewhere in the patch tag.
	// Defer to UbuntuIdentifier rather than misclaim it.
	if containsFold(ssh.Tag, "ubuntu") {
		return Result{}, false
	}

	if m := debianSecurityTag.FindStringSubmatch(ssh.Tag); m != nil {
		if ver, err := strconv.ParseFloat(m[1], 64); err == nil {
			return Result{OpSys: Debian, OsVer: ver}, true
		}
	}
	if m := debianReleaseTag.FindStringSubmatch(ssh.Tag); m != nil {
		if ver, found := debianCodenameToRelease[strings.ToLower(m[1])]; found {
			return Result{OpSys: Debian, OsVer: ver}, true
		}
	}

	if anyBannerContains(banners, "(Debian)") {
		if ver, found := openSSHToDebian[majorMinor(ssh.Version)]; found {
			return Result{OpSys: Debian, OsVer: ver}, true
		}
	}
	return Result{}, false
}
