package config

import "testing"

func TestBackendBaseURLResolution(t *testing.T) {
	cases := []struct {
		name string
		cfg  BackendConfig
		want string
	}{
		{
			name: "internal wins",
			cfg: BackendConfig{
				InternalURL: "http://backend.internal:5000/api",
				PublicURL:   "https://api.example.com",
				FallbackURL: "http://localhost:5000/api",
			},
			want: "http://backend.internal:5000/api",
		},
		{
			name: "public when no internal",
			cfg: BackendConfig{
				PublicURL:   "https://api.example.com",
				FallbackURL: "http://localhost:5000/api",
			},
			want: "https://api.example.com",
		},
		{
			name: "fallback when nothing set",
			cfg:  BackendConfig{FallbackURL: "http://localhost:5000/api"},
			want: "http://localhost:5000/api",
		},
	}
	for _, tc := range cases {
		if got := tc.cfg.BaseURL(); got != tc.want {
			t.Fatalf("%s: BaseURL() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port == "" {
		t.Fatalf("no default port")
	}
	if cfg.Cookies.AccessTTL() <= 0 || cfg.Cookies.RefreshTTL() <= 0 {
		t.Fatalf("cookie TTL defaults missing: %+v", cfg.Cookies)
	}
	if cfg.Cookies.VerificationTTL().Minutes() != 10 {
		t.Fatalf("verification TTL = %v, want 10m", cfg.Cookies.VerificationTTL())
	}
}
