package osid

// FedoraIdentifier recognizes Fedora purely by version: Fedora's OpenSSH
// packaging doesn't tag its banner, so detection relies on an HTTP
// "(Fedora)" parenthetical confirming the family and the shared
// OpenSSH-version table resolving the release.
type FedoraIdentifier struct{}

func (FedoraIdentifier) Scan(banners []string) (Result, bool) {
	ssh, ok := extractSSH(banners)
	if !ok {
		return Result{}, false
	}
	if !anyBannerContains(banners, "(Fedora)") {
		return Result{}, false
	}
	if ver, found := openSSHToFedora[majorMinor(ssh.Version)]; found {
		return Result{OpSys: Fedora, OsVer: ver}, true
	}
	return Result{}, false
}
