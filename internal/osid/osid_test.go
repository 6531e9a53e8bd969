package osid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebianIdentifierScan(t *testing.T) {
	t.Run("release name tag", func(t *testing.T) {
		res, ok := DebianIdentifier{}.Scan([]string{"SSH-2.0-OpenSSH_5.5p1 Debian-6+squeeze\r\n"})
		assert.True(t, ok)
		assert.Equal(t, Result{OpSys: Debian, OsVer: 6}, res)
	})

	t.Run("security update tag", func(t *testing.T) {
		res, ok := DebianIdentifier{}.Scan([]string{"SSH-2.0-OpenSSH_6.7p1 Debian-5+deb8u1\r\n"})
		assert.True(t, ok)
		assert.Equal(t, Result{OpSys: Debian, OsVer: 8}, res)
	})

	t.Run("version based via http tag", func(t *testing.T) {
		banners := []string{
			"SSH-2.0-OpenSSH_6.0p1\r\n",
			"HTTP/1.1 200 OK\r\nServer: Apache (Debian)\r\n\r\n",
		}
		res, ok := DebianIdentifier{}.Scan(banners)
		assert.True(t, ok)
		assert.Equal(t, Result{OpSys: Debian, OsVer: 7}, res)
	})

	t.Run("rejects ubuntu patch tag", func(t *testing.T) {
		_, ok := DebianIdentifier{}.Scan([]string{"SSH-2.0-OpenSSH_6.6.1p1 Debian-2ubuntu2.4\r\n"})
		assert.False(t, ok)
	})
}

func TestUbuntuIdentifierScan(t *testing.T) {
	t.Run("tag based", func(t *testing.T) {
		res, ok := UbuntuIdentifier{}.Scan([]string{"SSH-2.0-OpenSSH_6.6.1p1 Ubuntu-2ubuntu2.4\r\n"})
		assert.True(t, ok)
		assert.Equal(t, Result{OpSys: Ubuntu, OsVer: 14.04}, res)
	})

	t.Run("version based via http tag", func(t *testing.T) {
		banners := []string{
			"SSH-2.0-OpenSSH_7.2p2\r\n",
			"HTTP/1.1 200 OK\r\nServer: Apache (Ubuntu)\r\n\r\n",
		}
		res, ok := UbuntuIdentifier{}.Scan(banners)
		assert.True(t, ok)
		assert.Equal(t, Result{OpSys: Ubuntu, OsVer: 16.04}, res)
	})
}

func TestEnterpriseLinuxIdentifierScan(t *testing.T) {
	t.Run("tag based", func(t *testing.T) {
		res, ok := EnterpriseLinuxIdentifier{}.Scan([]string{"SSH-2.0-OpenSSH_6.6.1p1-RHEL7-6.6.1p1-22\r\n"})
		assert.True(t, ok)
		assert.Equal(t, Result{OpSys: EnterpriseLinux, OsVer: 7}, res)
	})

	t.Run("version based via centos http tag", func(t *testing.T) {
		banners := []string{
			"SSH-2.0-OpenSSH_5.3\r\n",
			"HTTP/1.1 200 OK\r\nServer: Apache (CentOS)\r\n\r\n",
		}
		res, ok := EnterpriseLinuxIdentifier{}.Scan(banners)
		assert.True(t, ok)
		assert.Equal(t, Result{OpSys: EnterpriseLinux, OsVer: 6}, res)
	})
}

func TestFedoraIdentifierScan(t *testing.T) {
	banners := []string{
		"SSH-2.0-OpenSSH_7.1p1\r\n",
		"HTTP/1.1 200 OK\r\nServer: Apache (Fedora)\r\n\r\n",
	}
	res, ok := FedoraIdentifier{}.Scan(banners)
	assert.True(t, ok)
	assert.Equal(t, Result{OpSys: Fedora, OsVer: 24}, res)
}

func TestAutoIdentify(t *testing.T) {
	tests := []struct {
		name     string
		banners  []string
		expected Result
	}{
		{
			name:     "debian release name",
			banners:  []string{"SSH-2.0-OpenSSH_5.5p1 Debian-6+squeeze\r\n"},
			expected: Result{OpSys: Debian, OsVer: 6},
		},
		{
			name:     "debian-prefixed ubuntu tag resolves to ubuntu",
			banners:  []string{"SSH-2.0-OpenSSH_6.6.1p1 Debian-2ubuntu2.4\r\n"},
			expected: Result{OpSys: Ubuntu, OsVer: 14.04},
		},
		{
			name: "centos via http tag and bare openssh version",
			banners: []string{
				"SSH-2.0-OpenSSH_5.3\r\n",
				"HTTP/1.1 200 OK\r\nServer: Apache (CentOS)\r\n\r\n",
			},
			expected: Result{OpSys: EnterpriseLinux, OsVer: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := Auto(tt.banners)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestAutoIdentifyUnknown(t *testing.T) {
	_, ok := Auto([]string{"SSH-2.0-OpenSSH_9.9p1\r\n"})
	assert.False(t, ok)
}
