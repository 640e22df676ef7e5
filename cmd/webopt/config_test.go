package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/absfs/webopt"
)

func TestSelectEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"index.html", "app.js", "logo.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	tests := []struct {
		name string
		cfg  webopt.Config
		want []webopt.Entry
	}{
		{
			name: "defaults",
			cfg:  webopt.Config{Dir: dir},
			want: webopt.DefaultEntries(),
		},
		{
			name: "explicit files",
			cfg:  webopt.Config{Dir: dir, Files: []string{"app.js", "data.txt=script"}},
			want: []webopt.Entry{{Name: "app.js", Kind: webopt.KindScript}, {Name: "data.txt", Kind: webopt.KindScript}},
		},
		{
			name: "scan",
			cfg:  webopt.Config{Dir: dir, Scan: true},
			want: []webopt.Entry{{Name: "app.js", Kind: webopt.KindScript}, {Name: "index.html", Kind: webopt.KindMarkup}},
		},
		{
			name: "scan with opaque",
			cfg:  webopt.Config{Dir: dir, Scan: true, IncludeOpaque: true},
			want: []webopt.Entry{
				{Name: "app.js", Kind: webopt.KindScript},
				{Name: "index.html", Kind: webopt.KindMarkup},
				{Name: "logo.png", Kind: webopt.KindOpaque},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectEntries(&tt.cfg)
			if err != nil {
				t.Fatalf("selectEntries failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelectEntriesRejectsBadKind(t *testing.T) {
	_, err := selectEntries(&webopt.Config{Dir: ".", Files: []string{"a.txt=binary"}})
	if err == nil {
		t.Error("Expected an error for an unknown kind")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Errorf("newLogger(debug) failed: %v", err)
	}
	if _, err := newLogger("chatty"); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
