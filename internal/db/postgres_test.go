package db

import (
	"strings"
	"testing"

	"github.com/kube-rca/pizza-observability/internal/config"
)

func TestBuildPostgresURL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.PostgresConfig
		want    string
		wantErr bool
	}{
		{
			name: "database-url-wins",
			cfg:  config.PostgresConfig{DatabaseURL: "postgres://a@b/c", User: "ignored", Database: "ignored"},
			want: "postgres://a@b/c",
		},
		{
			name: "assembled-with-password",
			cfg: config.PostgresConfig{
				Host: "db", Port: "5433", User: "pizza", Password: "s3cret", Database: "orders", SSLMode: "require",
			},
			want: "postgres://pizza:s3cret@db:5433/orders?sslmode=require",
		},
		{
			name: "assembled-without-password",
			cfg:  config.PostgresConfig{Host: "localhost", Port: "5432", User: "pizza", Database: "orders", SSLMode: "disable"},
			want: "postgres://pizza@localhost:5432/orders?sslmode=disable",
		},
		{
			name:    "missing-user",
			cfg:     config.PostgresConfig{Host: "localhost", Port: "5432", Database: "orders"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildPostgresURL(tt.cfg)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
					t.Fatalf("expected missing env error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("BuildPostgresURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
