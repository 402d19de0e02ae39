package engine

import (
	stderrors "errors"
	"testing"
)

func TestParseAppSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"<app-root></app-root>", "app-root", nil},
		{"<app-root>", "app-root", nil},
		{"<my-app ng-version=\"5\"></my-app>", "my-app", nil},
		{"<App-Root></App-Root>", "app-root", nil},
		{"<app-root/>", "app-root", nil},
		{"", "", ErrAppSelectorRequired},
		{"app-root", "", ErrInvalidAppSelector},
		{"<app-root", "", ErrInvalidAppSelector},
		{"<></>", "", ErrInvalidAppSelector},
		{"< app-root>", "", ErrInvalidAppSelector},
		{"<#app></#app>", "", ErrInvalidAppSelector},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAppSelector(tt.in)
			if tt.wantErr != nil {
				if !stderrors.Is(err, tt.wantErr) {
					t.Fatalf("ParseAppSelector(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAppSelector(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAppSelector(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
