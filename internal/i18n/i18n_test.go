package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestPrinter_Locales(t *testing.T) {
	t.Parallel()

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		locale string
		want   string
	}{
		{"ja-JP", "パスワードが間違っています"},
		{"ja", "パスワードが間違っています"},
		{"en-US", "Incorrect password"},
		{"fr-FR", "Incorrect password"},
		{"not a locale", "Incorrect password"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			t.Parallel()
			if got := c.Printer(tt.locale).Text("password.rejected"); got != tt.want {
				t.Errorf("Text(password.rejected) in %q = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestPrinter_FormatsArgs(t *testing.T) {
	t.Parallel()

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Printer("en-US").Text("password.prompt", 6); got != "Enter the 6-digit code" {
		t.Errorf("Text(password.prompt, 6) = %q", got)
	}
}

func TestCatalogsComplete(t *testing.T) {
	t.Parallel()

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, locale := range c.Locales() {
		if missing := c.MissingKeys(locale); len(missing) != 0 {
			t.Errorf("locale %s is missing keys: %s", locale, strings.Join(missing, ", "))
		}
	}
}

func TestLoadFS_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fs   fstest.MapFS
		want string
	}{
		{"empty", fstest.MapFS{}, "no catalog files"},
		{
			"locale mismatch",
			fstest.MapFS{"locales/en-US/ui.yaml": {Data: []byte("locale: ja-JP\nnamespace: ui\nmessages: {a: b}\n")}},
			"must match directory",
		},
		{
			"no base",
			fstest.MapFS{"locales/ja-JP/ui.yaml": {Data: []byte("locale: ja-JP\nnamespace: ui\nmessages: {a: b}\n")}},
			"base locale",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFS(tt.fs)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFS error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
