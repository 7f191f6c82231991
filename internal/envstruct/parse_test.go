package envstruct_test

import (
	"github.com/myrjola/kompassi/internal/envstruct"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestPopulate(t *testing.T) {
	type config struct {
		Addr      string `env:"KOMPASSI_ADDR" envDefault:"localhost:4000"`
		SQLiteURL string `env:"KOMPASSI_SQLITE_URL"`
		ignored   string //nolint:unused // verifies that untagged fields are skipped.
	}

	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         struct{}{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name: "defaults and overrides",
			v:    &config{},
			lookupEnv: func(key string) (string, bool) {
				if key == "KOMPASSI_SQLITE_URL" {
					return ":memory:", true
				}
				return "", false
			},
			want:    &config{Addr: "localhost:4000", SQLiteURL: ":memory:"},
			wantErr: nil,
		},
		{
			name:      "missing without default",
			v:         &config{},
			lookupEnv: func(_ string) (string, bool) { return "", false },
			want:      nil,
			wantErr:   envstruct.ErrEnvNotSet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tt.v)
		})
	}
}
