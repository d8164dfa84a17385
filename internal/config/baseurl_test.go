package config

import "testing"

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://127.0.0.1:5000", want: "http://127.0.0.1:5000"},
		{in: "http://127.0.0.1:5000/", want: "http://127.0.0.1:5000"},
		{in: "localhost:5000", want: "http://localhost:5000"},
		{in: " https://dl.example.com/app/ ", want: "https://dl.example.com/app"},
		{in: "ftp://dl.example.com", wantErr: true},
		{in: "http://dl.example.com/?x=1", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeBaseURL(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeBaseURL(%q) = %q, expected error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}
