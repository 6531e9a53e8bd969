package osid

// identifiers is tried in order of how much of the target population each
// family covers: Ubuntu, Debian, EnterpriseLinux, Fedora. Ubuntu goes first
// because its OpenSSH packaging tag sometimes carries a "Debian-" prefix
// (they share packaging heritage); DebianIdentifier additionally declines
// any tag containing "ubuntu" as a second line of defense.
var identifiers = []Identifier{
	UbuntuIdentifier{},
	DebianIdentifier{},
	EnterpriseLinuxIdentifier{},
	FedoraIdentifier{},
}

// Auto tries every known identifier against the given banners and returns
// the first one that recognizes its family.
func Auto(banners []string) (Result, bool) {
	for _, id := range identifiers {
		if res, ok := id.Scan(banners); ok {
			return res, true
		}
	}
	return Result{}, false
}
