package osid

import "regexp"

// UbuntuIdentifier recognizes Ubuntu by the "ubuntu" marker in its OpenSSH
// patch tag (e.g. "2ubuntu2.4") or, failing that, an HTTP "(Ubuntu)"
// parenthetical. Either way the release number comes from the shared
// OpenSSH-version-to-release table, since the patch tag itself is a
// packaging revision, not the Ubuntu release.
type UbuntuIdentifier struct{}

var ubuntuTag = regexp.MustCompile(`(?i)ubuntu`)

func (UbuntuIdentifier) Scan(banners []string) (Result, bool) {
	ssh, ok := extractSSH(banners)
	if !ok {
		return Result{}, false
	}
	if !ubuntuTag.MatchString(ssh.Tag) && !anyBannerContains(banners, "(Ubuntu)") {
		return Result{}, false
	}
	if ver, found := openSSHToUbuntu[majorMinor(ssh.Version)]; found {
		return Result{OpSys: Ubuntu, OsVer: ver}, true
	}
	return Result{}, false
}
