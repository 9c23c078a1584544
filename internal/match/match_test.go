package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		frontmost string
		target    string
		want      bool
	}{
		{"exact", "firefox", "firefox", true},
		{"exact case-insensitive", "Firefox", "firefox", true},
		{"frontmost contains target", "Code.exe", "code", true},
		{"target contains frontmost", "firefox", "org.mozilla.firefox", true},
		{"exe stripped against title", "Code.exe", "Visual Studio Code", true},
		{"target exe suffix", "code", "Code.exe", true},
		{"bundle id exact", "com.microsoft.VSCode", "com.microsoft.vscode", true},
		{"unrelated", "firefox", "emacs", false},
		{"empty frontmost", "", "code", false},
		{"empty target", "firefox", "", false},
		{"both empty", "", "", false},
		{"exe alone does not match everything", "explorer.exe", "firefox", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.frontmost, tt.target))
		})
	}
}
