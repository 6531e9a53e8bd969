package osid

// These tables map the OpenSSH version a distribution shipped to that
// distribution's release number. They're what the version-based detection
// strategies consult when a host's banners don't name the distro outright,
// and they're deliberately data rather than a chain of version comparisons:
// a new release just adds a row.

var openSSHToDebian = map[string]float64{
	"6.0": 7,
	"6.7": 8,
}

var openSSHToUbuntu = map[string]float64{
	"6.6": 14.04,
	"7.2": 16.04,
}

var openSSHToEnterpriseLinux = map[string]float64{
	"5.3": 6,
	"6.6": 7,
}

var openSSHToFedora = map[string]float64{
	"7.1": 24,
}

// debianCodenameToRelease maps a Debian release codename, as it appears in
// the "Debian-<n>+<codename>" OpenSSH packaging tag, to its release number.
var debianCodenameToRelease = map[string]float64{
	"etch":     4,
	"lenny":    5,
	"squeeze":  6,
	"wheezy":   7,
	"jessie":   8,
	"stretch":  9,
	"buster":   10,
	"bullseye": 11,
	"bookworm": 12,
}
