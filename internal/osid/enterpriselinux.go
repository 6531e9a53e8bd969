package osid

import (
	"regexp"
	"strconv"
)

// EnterpriseLinuxIdentifier recognizes RHEL-derived distributions. RHEL's
// own OpenSSH build tags the release number directly ("...-RHEL7-...");
// CentOS doesn't patch OpenSSH's banner at all, so it's only caught via its
// HTTP "(CentOS)" tag plus the shared version table.
type EnterpriseLinuxIdentifier struct{}

var rhelTag = regexp.MustCompile(`(?i)RHEL(\d+)`)

func (EnterpriseLinuxIdentifier) Scan(banners []string) (Result, bool) {
	ssh, ok := extractSSH(banners)
	if !ok {
		return Result{}, false
	}

	if m := rhelTag.FindStringSubmatch(ssh.Tag); m != nil {
		if ver, err := strconv.ParseFloat(m[1], 64); err == nil {
			return Result{OpSys: EnterpriseLinux, OsVer: ver}, true
		}
	}

	if anyBannerContains(banners, "(CentOS)") || anyBannerContains(banners, "(Red Hat)") || anyBannerContains(banners, "(RHEL)") {
		if ver, found := openSSHToEnterpriseLinux[majorMinor(ssh.Version)]; found {
			return Result{OpSys: EnterpriseLinux, OsVer: ver}, true
		}
	}
	return Result{}, false
}
